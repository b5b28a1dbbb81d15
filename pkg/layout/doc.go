// Package layout places weighted words inside a rectangle without overlap.
//
// # Overview
//
// Layout is a pure computation: a word list, a viewport size, an
// [Orientation] and a font size function go in, and one [Placement] per word
// comes out. Nothing here animates or draws; see the scene package for that.
//
// # Sizing
//
// [SizeMapper] maps word values to pixel font sizes through a [Scale]
// (linear, log or square root) over the value domain of the current word set.
// A single word always gets the maximum size.
//
// # Orientation
//
// [Rotation] derives a stable angle from the word text:
//
//   - single: 0°
//   - right angled: 0° or 90°
//   - multiple: one of -90°, -75°, ... 75°
//
// The angle comes from [Hash], a 31-multiplier fold over the JSON string
// form of the text, so a word tilts the same way in every run and every port.
//
// # Placement
//
// [Place] sorts words by descending size, starts each one near the viewport
// center at a seeded random offset, and walks an archimedean spiral outward
// until the padded glyph box neither collides with an earlier word nor leaves
// the viewport. A wall-clock budget bounds the whole pass; words left when it
// expires stay unplaced (NaN coordinates) rather than blocking the caller.
//
//	res, err := layout.Place(ctx, words, mapper.SizeFunc(), layout.Config{
//	    Width: 400, Height: 400,
//	    Orientation: layout.OrientationSingle,
//	})
//
// Results are deterministic for identical input: the RNG is seeded from
// [Config.Seed], never from the clock.
//
// # Measurement
//
// Glyph boxes come from a [Measurer]. [FontMeasurer] uses real Go Regular
// metrics, [CellMeasurer] counts terminal cells and [EstimateMeasurer] uses a
// fixed character-width ratio.
package layout

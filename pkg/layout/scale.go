package layout

import (
	"math"
	"strings"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
)

// Scale selects how word values map onto the font size range.
type Scale int

const (
	ScaleLinear Scale = iota
	ScaleLog
	ScaleSqrt
)

var scaleNames = map[Scale]string{
	ScaleLinear: "linear",
	ScaleLog:    "log",
	ScaleSqrt:   "square root",
}

func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return "linear"
}

// ParseScale parses a scale name. Accepts "linear", "log" and "square root"
// (also "sqrt", "square-root").
func ParseScale(s string) (Scale, error) {
	switch normalizeName(s) {
	case "linear", "":
		return ScaleLinear, nil
	case "log", "logarithmic":
		return ScaleLog, nil
	case "square root", "sqrt":
		return ScaleSqrt, nil
	}
	return ScaleLinear, werrors.New(werrors.ErrCodeInvalidOptions, "unknown scale %q (want linear, log or square root)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scale) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scale) UnmarshalText(b []byte) error {
	v, err := ParseScale(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// normalizeName lowercases and maps '-' and '_' to spaces.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

// SizeFunc returns the pixel font size for a word.
type SizeFunc func(Word) float64

// SizeMapper maps values to font sizes over the domain of one word set.
type SizeMapper struct {
	scale      Scale
	dmin, dmax float64
	rmin, rmax float64
}

// NewSizeMapper builds a mapper for the given words. The domain is
// [min(value), max(value)] and the range [minSize, maxSize]; with exactly one
// word the range collapses to [maxSize, maxSize].
func NewSizeMapper(words []Word, scale Scale, minSize, maxSize float64) SizeMapper {
	if minSize > maxSize {
		minSize, maxSize = maxSize, minSize
	}
	m := SizeMapper{scale: scale, rmin: minSize, rmax: maxSize}
	if len(words) == 1 {
		m.rmin = maxSize
	}
	for i, w := range words {
		if i == 0 || w.Value < m.dmin {
			m.dmin = w.Value
		}
		if i == 0 || w.Value > m.dmax {
			m.dmax = w.Value
		}
	}
	return m
}

// Size maps v into the font size range. Values outside the domain clamp to
// its ends; a degenerate domain maps to the middle of the range.
func (m SizeMapper) Size(v float64) float64 {
	lo, hi := m.transform(m.dmin), m.transform(m.dmax)
	t := 0.5
	if span := hi - lo; span > 0 {
		t = (m.transform(v) - lo) / span
	}
	if math.IsNaN(t) {
		t = 0
	}
	t = max(0, min(1, t))
	return m.rmin + t*(m.rmax-m.rmin)
}

// SizeFunc adapts the mapper to a word-level size function.
func (m SizeMapper) SizeFunc() SizeFunc {
	return func(w Word) float64 { return m.Size(w.Value) }
}

func (m SizeMapper) transform(v float64) float64 {
	switch m.scale {
	case ScaleLog:
		// Shift by the domain minimum so zero and negative weights stay finite.
		return math.Log1p(max(0, v-m.dmin))
	case ScaleSqrt:
		if v < 0 {
			return -math.Sqrt(-v)
		}
		return math.Sqrt(v)
	}
	return v
}

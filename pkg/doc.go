// Package pkg provides the core libraries for the wordcloud component.
//
// # Overview
//
// Wordcloud lays out weighted words on a spiral without overlap and keeps an
// animated scene of them in sync with changing data, options and viewport
// size. The pkg directory is organized into three main areas:
//
//  1. [layout] - Pure layout (size scales, rotation hash, spiral placement)
//  2. [cloud], [scene], [loop] - The live component and its runtime
//  3. [sink] - Export of a settled frame (SVG, PDF, PNG, JSON)
//
// # Architecture
//
// The data flow through a cloud:
//
//	SetData / SetOptions / Resize
//	         ↓
//	    [cloud] package (job scheduling, latest job wins)
//	         ↓
//	    [layout] package (font sizes + spiral placement, off the loop)
//	         ↓
//	    [scene] package (enter/update/exit transitions, containment)
//	         ↓
//	    frames to the host, RenderComplete event
//
// # Quick Start
//
// Lay out words headlessly and write an SVG:
//
//	import (
//	    "context"
//	    "time"
//
//	    "github.com/matzehuels/wordcloud/pkg/cloud"
//	    "github.com/matzehuels/wordcloud/pkg/layout"
//	    "github.com/matzehuels/wordcloud/pkg/loop"
//	    "github.com/matzehuels/wordcloud/pkg/sink"
//	)
//
//	// 1. A loop on a virtual clock settles transitions instantly
//	l := loop.New(loop.WithClock(loop.NewVirtualClock(time.Now())))
//
//	// 2. Create the cloud and feed it words
//	c := cloud.New(container, cloud.DefaultPalette, cloud.WithLoop(l))
//	c.SetData([]layout.Word{{RawText: "go", Value: 42}, {RawText: "zig", Value: 7}})
//
//	// 3. Run until nothing is left to do
//	_ = l.Drain(context.Background())
//
//	// 4. Render the settled frame
//	svg := sink.RenderSVG(c.Frame())
//
// # Main Packages
//
// [layout] - Words, placements and the placement algorithm. [layout.Place]
// is deterministic for a fixed seed and bounded by a wall-clock budget.
//
// [loop] - Single-goroutine task queue with timers and off-loop work whose
// continuation is posted back. Every cloud method runs on it.
//
// [scene] - Retained nodes keyed by raw text, transitions with per-round
// completion counting, containment bounds and hit testing.
//
// [cloud] - The component: create, setOptions, setData, resize, destroy,
// status, debug info and the RenderComplete/Select events.
//
// [sink] - Frame exporters. PNG goes through rsvg-convert.
//
// ## Infrastructure
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for job, layout, reconcile and render events.
//
// [fonts] - The embedded Go Regular font used for measurement and PDF.
//
// [buildinfo] - Version information set by ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/layout
// [cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud
// [scene]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/scene
// [loop]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/loop
// [sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/sink
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/buildinfo
// [layout.Place]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/layout#Place
package pkg

// Package cloud is a live word cloud component.
//
// A [Cloud] binds to a host [Container], lays words out with the layout
// package and keeps a scene of animated nodes in sync with every change of
// data, options or size.
//
// # Lifecycle
//
//	c := cloud.New(container, cloud.DefaultPalette, cloud.WithLoop(l))
//	c.Subscribe(cloud.EventRenderComplete, func(ev cloud.Event) { ... })
//	c.SetOptions(cloud.Options{Orientation: layout.OrientationMultiple, MinFontSize: 12, MaxFontSize: 60})
//	c.SetData(words)
//	...
//	c.Resize()   // after the container changed size
//	c.Destroy()
//
// All methods run on the cloud's [loop.Loop]. Calls made in one loop task
// are batched: SetData(A), SetData(B), SetData(C) in a row produce one layout
// of C and one [EventRenderComplete].
//
// # Scheduling
//
// At most one job is pending and at most one of placement or reconciliation
// runs at a time. A job submitted while busy replaces the pending one. When a
// pipeline run finishes and another job is pending, it starts next; only when
// nothing is pending is the job stored as completed and RenderComplete
// emitted. Placement results and reconciliations overtaken by a newer job are
// discarded, so older data is never applied after newer data.
//
// The scheduler itself is a pure state machine; the Cloud only executes the
// effects it returns.
//
// # Status
//
// After each render the scene bounds are compared with the viewport.
// [StatusComplete] means everything fits; [StatusIncomplete] means the cloud
// overflows or some words could not be placed. On [Cloud.Resize] a complete
// cloud that fits both the old and the new size is only recentred.
package cloud

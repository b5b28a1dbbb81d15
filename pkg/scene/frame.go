package scene

// Surface receives rendered frames. Draw is called on the loop goroutine and
// must not retain the frame's node slice past the call.
type Surface interface {
	Draw(Frame)
}

// SurfaceFunc adapts a function to [Surface].
type SurfaceFunc func(Frame)

// Draw calls f(fr).
func (f SurfaceFunc) Draw(fr Frame) { f(fr) }

// Frame is the interpolated state of every node at one instant.
type Frame struct {
	Width  float64
	Height float64
	Nodes  []NodeState
}

// NodeState is one node as drawn. X and Y are the glyph center in viewport
// coordinates.
type NodeState struct {
	Key      string
	Text     string
	Color    string
	X        float64
	Y        float64
	Rotation float64
	Size     float64
	Opacity  float64
	Hidden   bool
	Exiting  bool
}

// Visible returns the nodes a renderer should draw.
func (f Frame) Visible() []NodeState {
	out := make([]NodeState, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.Hidden || n.Opacity <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

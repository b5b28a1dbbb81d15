package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	frame   *scene.Frame
	options *cloud.Options
	build   bool
}

// WithJSONFrame includes the drawn node states, hidden ones included.
func WithJSONFrame(f scene.Frame) JSONOption { return func(r *jsonRenderer) { r.frame = &f } }

// WithJSONOptions records the options the layout was computed with.
func WithJSONOptions(o cloud.Options) JSONOption { return func(r *jsonRenderer) { r.options = &o } }

// WithJSONBuildInfo records the generator version.
func WithJSONBuildInfo() JSONOption { return func(r *jsonRenderer) { r.build = true } }

type jsonOutput struct {
	cloud.DebugInfo
	Options *cloud.Options  `json:"options,omitempty"`
	Nodes   []jsonNode      `json:"nodes,omitempty"`
	Build   *buildinfo.Info `json:"build,omitempty"`
}

type jsonNode struct {
	Key      string  `json:"key"`
	Text     string  `json:"text"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotate"`
	Size     float64 `json:"size"`
	Opacity  float64 `json:"opacity"`
	Hidden   bool    `json:"hidden,omitempty"`
}

// RenderJSON exports the cloud's debug info as a pretty-printed JSON
// document. Unplaced words have null coordinates.
func RenderJSON(info cloud.DebugInfo, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{DebugInfo: info, Options: r.options}
	if r.frame != nil {
		out.Nodes = make([]jsonNode, 0, len(r.frame.Nodes))
		for _, n := range r.frame.Nodes {
			if n.Exiting {
				continue
			}
			out.Nodes = append(out.Nodes, jsonNode{
				Key:      n.Key,
				Text:     n.Text,
				Color:    n.Color,
				X:        n.X,
				Y:        n.Y,
				Rotation: n.Rotation,
				Size:     n.Size,
				Opacity:  n.Opacity,
				Hidden:   n.Hidden,
			})
		}
	}
	if r.build {
		b := buildinfo.Current()
		out.Build = &b
	}
	return json.MarshalIndent(out, "", "  ")
}

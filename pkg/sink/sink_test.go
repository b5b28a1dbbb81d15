package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

func testFrame() scene.Frame {
	return scene.Frame{
		Width:  400,
		Height: 300,
		Nodes: []scene.NodeState{
			{Key: "go", Text: "Go", Color: "#00add8", X: 200, Y: 150, Size: 72, Opacity: 1},
			{Key: "rust", Text: "rust", Color: "#dea584", X: 120, Y: 80, Rotation: 90, Size: 30, Opacity: 1},
			{Key: "a<b", Text: "a<b & c", Color: "#333333", X: 300, Y: 220, Size: 18, Opacity: 0.5},
			{Key: "hidden", Text: "hidden", Color: "#000000", X: -250, Y: -200, Size: 18, Hidden: true},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFrame(), WithTitle("langs"), WithBackground("#fafafa")))

	for _, want := range []string{
		`viewBox="0 0 400.0 300.0"`,
		`<title>langs</title>`,
		`fill="#fafafa"`,
		`>Go</text>`,
		`transform="rotate(90 120.00 80.00)"`,
		`>a&lt;b &amp; c</text>`,
		`data-key="a&lt;b"`,
		`fill-opacity="0.500"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, ">hidden</text>") {
		t.Error("hidden word was drawn")
	}
	if got := strings.Count(svg, "<text "); got != 3 {
		t.Errorf("text elements = %d, want 3", got)
	}
	if strings.Count(svg, "transform=") != 1 {
		t.Error("unrotated words should not carry a transform")
	}
}

func TestRenderSVGInteraction(t *testing.T) {
	plain := string(RenderSVG(testFrame()))
	if strings.Contains(plain, "<style>") {
		t.Error("style emitted without WithInteraction")
	}
	interactive := string(RenderSVG(testFrame(), WithInteraction()))
	if !strings.Contains(interactive, ".word:hover") {
		t.Error("interaction CSS missing")
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(testFrame(), WithPDFTitle("langs"), WithPDFBackground("#ffffff"))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestRenderPDFInvalidViewport(t *testing.T) {
	_, err := RenderPDF(scene.Frame{Width: 0, Height: 100})
	if !werrors.Is(err, werrors.ErrCodeInvalidViewport) {
		t.Errorf("err = %v, want INVALID_VIEWPORT", err)
	}
}

func TestRenderJSON(t *testing.T) {
	unplaced := layout.Unplaced(18, 0)
	info := cloud.DebugInfo{
		JobID: "job-1",
		Positions: []cloud.DebugWord{
			{RawText: "go", DisplayText: "Go", X: 0, Y: 0, Size: 72},
			{RawText: "hidden", DisplayText: "hidden", X: unplaced.X, Y: unplaced.Y, Size: 18},
		},
		Size:   cloud.DebugSize{Width: 400, Height: 300},
		Status: cloud.StatusIncomplete,
	}

	data, err := RenderJSON(info, WithJSONFrame(testFrame()), WithJSONOptions(cloud.DefaultOptions()), WithJSONBuildInfo())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out["jobId"] != "job-1" || out["status"] != "INCOMPLETE" {
		t.Errorf("header = %v %v", out["jobId"], out["status"])
	}
	positions := out["positions"].([]any)
	if len(positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(positions))
	}
	if x := positions[1].(map[string]any)["x"]; x != nil {
		t.Errorf("unplaced x = %v, want null", x)
	}
	if nodes := out["nodes"].([]any); len(nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(nodes))
	}
	if out["options"] == nil || out["build"] == nil {
		t.Error("options or build info missing")
	}
}

func TestRenderJSONMinimal(t *testing.T) {
	data, err := RenderJSON(cloud.DebugInfo{Positions: []cloud.DebugWord{}, Status: cloud.StatusComplete})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	for _, key := range []string{"nodes", "options", "build", "jobId"} {
		if _, ok := out[key]; ok {
			t.Errorf("unexpected key %q", key)
		}
	}
}

func TestFade(t *testing.T) {
	c := fade(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	if c.R != 100 || c.G != 50 || c.B != 25 || c.A != 127 {
		t.Errorf("fade = %+v", c)
	}
	if got := fade(color.RGBA{R: 1, G: 2, B: 3, A: 255}, 2); got.A != 255 {
		t.Errorf("opacity above 1 changed alpha: %+v", got)
	}
	if got := fade(color.RGBA{R: 9, G: 9, B: 9, A: 255}, math.Inf(-1)); got.A != 0 {
		t.Errorf("negative opacity alpha = %d", got.A)
	}
}

package cloud

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Status reports whether the rendered cloud fits its viewport.
type Status string

const (
	// StatusComplete means every word is inside the viewport.
	StatusComplete Status = "COMPLETE"
	// StatusIncomplete means the cloud overflows or some words were dropped.
	StatusIncomplete Status = "INCOMPLETE"
)

// DebugInfo is a diagnostic snapshot of the completed layout.
type DebugInfo struct {
	JobID     string      `json:"jobId,omitempty"`
	Positions []DebugWord `json:"positions"`
	Size      DebugSize   `json:"size"`
	Status    Status      `json:"status"`
}

// DebugSize is the current viewport size.
type DebugSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DebugWord is one word of the completed layout.
type DebugWord struct {
	RawText     string  `json:"rawText"`
	DisplayText string  `json:"displayText"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Rotation    float64 `json:"rotate"`
	Size        float64 `json:"size"`
}

// MarshalJSON writes null coordinates for unplaced words.
func (w DebugWord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RawText     string   `json:"rawText"`
		DisplayText string   `json:"displayText"`
		X           *float64 `json:"x"`
		Y           *float64 `json:"y"`
		Rotation    *float64 `json:"rotate"`
		Size        *float64 `json:"size"`
	}{
		RawText:     w.RawText,
		DisplayText: w.DisplayText,
		X:           finite(w.X),
		Y:           finite(w.Y),
		Rotation:    finite(w.Rotation),
		Size:        finite(w.Size),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func debugWords(words []layout.PlacedWord) []DebugWord {
	out := make([]DebugWord, len(words))
	for i, w := range words {
		out[i] = DebugWord{
			RawText:     w.RawText,
			DisplayText: w.Label(),
			X:           w.X,
			Y:           w.Y,
			Rotation:    w.Rotation,
			Size:        w.Size,
		}
	}
	return out
}

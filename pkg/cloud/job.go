package cloud

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Job is one unit of layout and render work.
type Job struct {
	ID            string
	Words         []layout.PlacedWord
	Width         float64
	Height        float64
	RefreshLayout bool    // false reuses Words' placements and only re-renders
	Options       Options // options the job was built with
	Version       uint64  // data/options version the job reflects
}

func newJobID() string {
	return uuid.NewString()
}

func (j *Job) viewportValid() bool {
	return j.Width > 0 && j.Height > 0
}

// clone returns a copy that shares no word slice with j.
func (j *Job) clone() *Job {
	c := *j
	c.Words = slices.Clone(j.Words)
	return &c
}

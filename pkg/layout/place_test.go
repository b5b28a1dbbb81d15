package layout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
)

// frozen returns a clock that never advances, so the budget never expires.
func frozen() func() time.Time {
	t0 := time.Unix(0, 0)
	return func() time.Time { return t0 }
}

func manyWords(n int) []Word {
	out := make([]Word, n)
	for i := range out {
		out[i] = Word{RawText: fmt.Sprintf("word%02d", i), Value: float64(i + 1)}
	}
	return out
}

func TestPlaceRejectsEmptyViewport(t *testing.T) {
	calls := 0
	size := func(Word) float64 { calls++; return 10 }

	for _, dims := range [][2]float64{{0, 100}, {100, 0}, {-1, 50}, {0, 0}} {
		_, err := Place(context.Background(), manyWords(3), size, Config{Width: dims[0], Height: dims[1]})
		if !werrors.Is(err, werrors.ErrCodeInvalidViewport) {
			t.Errorf("Place(%v) error = %v, want INVALID_VIEWPORT", dims, err)
		}
	}
	if calls != 0 {
		t.Errorf("size function called %d times for empty viewports", calls)
	}
}

func TestPlaceEmptyInput(t *testing.T) {
	res, err := Place(context.Background(), nil, func(Word) float64 { return 10 }, Config{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("Place(nil) error = %v", err)
	}
	if res.Placed != 0 || res.Dropped != 0 || len(res.Words) != 0 {
		t.Errorf("Place(nil) = %+v, want empty result", res)
	}
}

func TestPlaceTwoWords(t *testing.T) {
	words := []Word{{RawText: "a", Value: 10}, {RawText: "b", Value: 1}}
	m := NewSizeMapper(words, ScaleLinear, 18, 72)

	res, err := Place(context.Background(), words, m.SizeFunc(), Config{
		Width: 400, Height: 400,
		Orientation: OrientationSingle,
		Now:         frozen(),
	})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if res.Placed != 2 {
		t.Fatalf("Placed = %d, want 2", res.Placed)
	}
	for _, w := range res.Words {
		if w.Rotation != 0 {
			t.Errorf("%s rotation = %v, want 0", w.RawText, w.Rotation)
		}
	}
	if a, b := res.Words[0], res.Words[1]; a.Size < b.Size {
		t.Errorf("size(a)=%v < size(b)=%v", a.Size, b.Size)
	}
	if res.Words[0].Size != 72 || res.Words[1].Size != 18 {
		t.Errorf("sizes = %v, %v; want 72, 18", res.Words[0].Size, res.Words[1].Size)
	}
}

func TestPlaceNoOverlap(t *testing.T) {
	words := manyWords(40)
	m := NewSizeMapper(words, ScaleLinear, 10, 40)
	cfg := Config{Width: 400, Height: 300, Orientation: OrientationMultiple, Now: frozen()}

	res, err := Place(context.Background(), words, m.SizeFunc(), cfg)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if res.Placed == 0 || res.Placed+res.Dropped != len(words) {
		t.Fatalf("Placed=%d Dropped=%d for %d words", res.Placed, res.Dropped, len(words))
	}

	const eps = 1e-6
	view := Rect{W: cfg.Width, H: cfg.Height}.Inflate(eps)
	var boxes []Rect
	for i, w := range res.Words {
		if w.RawText != words[i].RawText {
			t.Fatalf("result order changed at %d: %s != %s", i, w.RawText, words[i].RawText)
		}
		if !w.Valid() {
			continue
		}
		tw, th := EstimateMeasurer{}.Measure(w.Label(), w.Size)
		box := GlyphBox(w.X+cfg.Width/2, w.Y+cfg.Height/2, tw, th, w.Rotation)
		if box.X < view.X || box.Y < view.Y || box.Right() > view.Right() || box.Bottom() > view.Bottom() {
			t.Errorf("%s box %+v leaves viewport", w.RawText, box)
		}
		shrunk := box.Inflate(-eps)
		for j, other := range boxes {
			if shrunk.Overlaps(other) {
				t.Errorf("%s overlaps placed box %d", w.RawText, j)
			}
		}
		boxes = append(boxes, box)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	words := manyWords(25)
	m := NewSizeMapper(words, ScaleSqrt, 12, 48)
	cfg := Config{Width: 500, Height: 350, Orientation: OrientationRightAngled, Now: frozen()}

	first, err1 := Place(context.Background(), words, m.SizeFunc(), cfg)
	second, err2 := Place(context.Background(), words, m.SizeFunc(), cfg)
	if err1 != nil || err2 != nil {
		t.Fatalf("Place() errors: %v, %v", err1, err2)
	}
	if diff := cmp.Diff(first, second, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("placement not deterministic (-first +second):\n%s", diff)
	}

	cfg.Seed = 7
	third, _ := Place(context.Background(), words, m.SizeFunc(), cfg)
	if cmp.Equal(first.Words, third.Words, cmpopts.EquateNaNs()) {
		t.Error("different seeds produced identical placements")
	}
}

func TestPlaceBudgetExpires(t *testing.T) {
	now := time.Unix(0, 0)
	tick := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	words := manyWords(5)
	res, err := Place(context.Background(), words, func(Word) float64 { return 12 }, Config{
		Width: 300, Height: 300,
		Budget: time.Second,
		Now:    tick,
	})
	if !werrors.Is(err, werrors.ErrCodeNoPlacement) {
		t.Errorf("error = %v, want NO_PLACEMENT", err)
	}
	if !res.Expired {
		t.Error("Expired = false, want true")
	}
	if res.Dropped != len(words) {
		t.Errorf("Dropped = %d, want %d", res.Dropped, len(words))
	}
	for _, w := range res.Words {
		if w.Valid() {
			t.Errorf("%s placed after budget expired", w.RawText)
		}
		if w.Size != 12 {
			t.Errorf("%s unplaced size = %v, want 12", w.RawText, w.Size)
		}
	}
}

func TestPlaceWordTooLarge(t *testing.T) {
	words := []Word{{RawText: "enormous", Value: 1}}
	res, err := Place(context.Background(), words, func(Word) float64 { return 500 }, Config{
		Width: 100, Height: 100, Now: frozen(),
	})
	if !werrors.Is(err, werrors.ErrCodeNoPlacement) {
		t.Fatalf("error = %v, want NO_PLACEMENT", err)
	}
	if res.Expired {
		t.Error("Expired = true for a finished walk")
	}
	if res.Words[0].Valid() {
		t.Error("oversized word should be unplaced")
	}
}

func TestPlaceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Place(ctx, manyWords(3), func(Word) float64 { return 10 }, Config{Width: 200, Height: 200})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if res.Placed != 0 {
		t.Errorf("Placed = %d after cancel", res.Placed)
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()

	if c.Padding != DefaultPadding {
		t.Errorf("Padding = %v, want %v", c.Padding, DefaultPadding)
	}
	if c.Budget != DefaultBudget {
		t.Errorf("Budget = %v, want %v", c.Budget, DefaultBudget)
	}
	if c.Seed != DefaultSeed {
		t.Errorf("Seed = %v, want %v", c.Seed, DefaultSeed)
	}
	if c.Measurer == nil || c.Now == nil {
		t.Error("Measurer and Now should be set")
	}
	if c.Width != 0 || c.Height != 0 {
		t.Error("SetDefaults must not invent a viewport")
	}

	c = Config{Padding: -1}
	c.SetDefaults()
	if c.Padding != -1 {
		t.Errorf("negative padding overwritten: %v", c.Padding)
	}
}

func TestSpiralTerminates(t *testing.T) {
	for _, dir := range []float64{1, -1} {
		s := newSpiral(40, 20, dir)
		steps := 0
		for {
			dx, dy, ok := s.next()
			if !ok {
				break
			}
			if steps == 0 && (dx != 0 || dy != 0) {
				t.Errorf("first offset = (%v, %v), want origin", dx, dy)
			}
			steps++
			if steps > 1_000_000 {
				t.Fatal("spiral did not terminate")
			}
		}
		if steps < 10 {
			t.Errorf("dir %v: only %d steps", dir, steps)
		}
	}
}

func TestRect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	c := Rect{X: 10, Y: 0, W: 5, H: 5}

	if !a.Overlaps(b) {
		t.Error("a should overlap b")
	}
	if a.Overlaps(c) {
		t.Error("touching edges should not overlap")
	}
	if got := a.Union(b); got != (Rect{X: 0, Y: 0, W: 15, H: 15}) {
		t.Errorf("Union = %+v", got)
	}
	if got := (Rect{}).Union(c); got != c {
		t.Errorf("empty Union = %+v, want %+v", got, c)
	}
	if !a.Contains(10, 10) || a.Contains(11, 0) {
		t.Error("Contains wrong at edges")
	}

	box := GlyphBox(0, 0, 20, 10, 90)
	if !approx(box.W, 10) || !approx(box.H, 20) {
		t.Errorf("rotated box = %+v, want 10x20", box)
	}
}

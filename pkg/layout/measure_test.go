package layout

import (
	"math"
	"sync"
	"testing"
)

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer() error = %v", err)
	}

	w10, h10 := m.Measure("hello", 10)
	w20, h20 := m.Measure("hello", 20)
	if w10 <= 0 || h10 <= 0 {
		t.Fatalf("Measure(hello, 10) = %v x %v", w10, h10)
	}
	if w20 <= w10 || h20 <= h10 {
		t.Errorf("larger size should measure larger: %vx%v vs %vx%v", w20, h20, w10, h10)
	}
	if wide, _ := m.Measure("hello world", 10); wide <= w10 {
		t.Errorf("longer text should be wider: %v <= %v", wide, w10)
	}
	if w, h := m.Measure("x", 0); w != 0 || h != 0 {
		t.Errorf("Measure at size 0 = %v x %v, want 0 x 0", w, h)
	}
}

func TestFontMeasurerConcurrent(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := m.Measure("concurrent", 24)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, _ := m.Measure("concurrent", 24); got != want {
				t.Errorf("Measure = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestCellMeasurer(t *testing.T) {
	tests := []struct {
		text  string
		width float64
	}{
		{"go", 2},
		{"日本", 4},
		{"", 0},
	}
	for _, tt := range tests {
		w, h := CellMeasurer{}.Measure(tt.text, 99)
		if w != tt.width || h != 1 {
			t.Errorf("Measure(%q) = %v x %v, want %v x 1", tt.text, w, h, tt.width)
		}
	}
}

func TestEstimateMeasurer(t *testing.T) {
	w, h := EstimateMeasurer{}.Measure("abcd", 10)
	if !approx(w, 22) || h != 10 {
		t.Errorf("Measure(abcd, 10) = %v x %v, want 22 x 10", w, h)
	}
}

func TestFontMeasurerCachesQuantizedSizes(t *testing.T) {
	m, err := NewFontMeasurer()
	if err != nil {
		t.Fatalf("NewFontMeasurer() error = %v", err)
	}

	// An animated size sweeping 10 → 11 in tiny steps.
	for i := 0; i <= 1000; i++ {
		m.Measure("go", 10+float64(i)/1000)
	}
	if n := len(m.faces); n > 5 {
		t.Errorf("cached %d faces for sizes 10..11, want at most 5", n)
	}

	w1, _ := m.Measure("go", 12)
	w2, _ := m.Measure("go", 12.01)
	if w1 != w2 {
		t.Errorf("sizes within one step should share a face: %v != %v", w1, w2)
	}

	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if w, h := m.Measure("go", size); w != 0 || h != 0 {
			t.Errorf("Measure(go, %v) = %v x %v, want 0 x 0", size, w, h)
		}
	}
}

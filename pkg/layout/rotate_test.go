package layout

import (
	"testing"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
)

func TestHash(t *testing.T) {
	tests := []struct {
		text     string
		max      int
		expected int
	}{
		{"a", 2, 1},
		{"a", 12, 3},
		{"b", 2, 0},
		{"b", 12, 10},
		{"", 12, 8},
		{"hello", 12, 6},
		{"line\nbreak", 12, 11},
		{`say "hi"`, 12, 6},
		{"😀", 12, 3},
		{"\x01", 12, 2},
		{"kibana", 12, 4},
		{"anything", 0, 0},
	}

	for _, tt := range tests {
		if got := Hash(tt.text, tt.max); got != tt.expected {
			t.Errorf("Hash(%q, %d) = %d, want %d", tt.text, tt.max, got, tt.expected)
		}
	}
}

func TestQuoteJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x1f", `"\u001f"`},
		{"<tag>&", `"<tag>&"`},
		{"ünï", `"ünï"`},
	}
	for _, tt := range tests {
		if got := quoteJSON(tt.in); got != tt.want {
			t.Errorf("quoteJSON(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRotation(t *testing.T) {
	words := []string{"a", "b", "", "hello", "line\nbreak", "kibana", "😀"}

	for _, w := range words {
		if got := Rotation(w, OrientationSingle); got != 0 {
			t.Errorf("Rotation(%q, single) = %v, want 0", w, got)
		}
		if got := Rotation(w, OrientationRightAngled); got != 0 && got != 90 {
			t.Errorf("Rotation(%q, right angled) = %v, want 0 or 90", w, got)
		}
		got := Rotation(w, OrientationMultiple)
		if got < -90 || got > 75 || int(got)%15 != 0 {
			t.Errorf("Rotation(%q, multiple) = %v, want multiple of 15 in [-90, 75]", w, got)
		}
		if got != Rotation(w, OrientationMultiple) {
			t.Errorf("Rotation(%q, multiple) not stable", w)
		}
	}

	if got := Rotation("a", OrientationMultiple); got != -45 {
		t.Errorf("Rotation(a, multiple) = %v, want -45", got)
	}
	if got := Rotation("b", OrientationMultiple); got != 60 {
		t.Errorf("Rotation(b, multiple) = %v, want 60", got)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"single", OrientationSingle, false},
		{"", OrientationSingle, false},
		{"right angled", OrientationRightAngled, false},
		{"Right-Angled", OrientationRightAngled, false},
		{"right_angled", OrientationRightAngled, false},
		{"multiple", OrientationMultiple, false},
		{"diagonal", OrientationSingle, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !werrors.Is(err, werrors.ErrCodeInvalidOptions) {
			t.Errorf("ParseOrientation(%q) code = %v", tt.in, werrors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrientationText(t *testing.T) {
	for _, o := range []Orientation{OrientationSingle, OrientationRightAngled, OrientationMultiple} {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Orientation
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", b, err)
		}
		if back != o {
			t.Errorf("round trip %v -> %s -> %v", o, b, back)
		}
	}

	var o Orientation
	if err := o.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText(sideways) should fail")
	}
}

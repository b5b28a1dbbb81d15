package layout

import (
	"strings"
	"unicode/utf16"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
)

// Orientation decides how words are rotated.
type Orientation int

const (
	OrientationSingle Orientation = iota
	OrientationRightAngled
	OrientationMultiple
)

var orientationNames = map[Orientation]string{
	OrientationSingle:      "single",
	OrientationRightAngled: "right angled",
	OrientationMultiple:    "multiple",
}

func (o Orientation) String() string {
	if name, ok := orientationNames[o]; ok {
		return name
	}
	return "single"
}

// ParseOrientation parses an orientation name. Accepts "single",
// "right angled" (also "right-angled", "right_angled") and "multiple".
func ParseOrientation(s string) (Orientation, error) {
	switch normalizeName(s) {
	case "single", "":
		return OrientationSingle, nil
	case "right angled":
		return OrientationRightAngled, nil
	case "multiple":
		return OrientationMultiple, nil
	}
	return OrientationSingle, werrors.New(werrors.ErrCodeInvalidOptions, "unknown orientation %q (want single, right angled or multiple)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Rotation returns the angle in degrees for text under orientation o.
// Callers pass the word's identity key (RawText), not its display label, so
// a word keeps its angle when only the label changes.
func Rotation(text string, o Orientation) float64 {
	switch o {
	case OrientationRightAngled:
		return float64(Hash(text, 2) * 90)
	case OrientationMultiple:
		return float64(Hash(text, 12)*15 - 90)
	}
	return 0
}

// Hash folds text into [0, max). The text is first serialized as a JSON
// string literal (quotes included); then for every code point the first
// UTF-16 code unit is folded in with h = (h*31 + unit) mod max.
func Hash(text string, max int) int {
	if max <= 0 {
		return 0
	}
	h := 0
	for _, r := range quoteJSON(text) {
		unit := int(r)
		if r >= 0x10000 {
			hi, _ := utf16.EncodeRune(r)
			unit = int(hi)
		}
		h = (h*31 + unit) % max
	}
	if h < 0 {
		h = -h
	}
	return h % max
}

// quoteJSON renders s the way a JSON serializer writes a string value:
// quote and backslash escaped, \b \f \n \r \t short forms, other control
// characters as lowercase \u00xx. Nothing else is escaped.
func quoteJSON(s string) string {
	const hex = "0123456789abcdef"
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

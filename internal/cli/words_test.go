package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

func TestParseWords(t *testing.T) {
	want := []layout.Word{
		{RawText: "go", DisplayText: "Go", Value: 42, Meta: map[string]any{"lang": true}},
		{RawText: "zig", Value: 3},
	}

	tests := []struct {
		name   string
		format string
		data   string
	}{
		{
			name:   "json",
			format: "json",
			data:   `[{"text": "go", "display": "Go", "value": 42, "meta": {"lang": true}}, {"text": "zig", "value": 3}]`,
		},
		{
			name:   "toml",
			format: "toml",
			data: `
[[words]]
text = "go"
display = "Go"
value = 42
meta = { lang = true }

[[words]]
text = "zig"
value = 3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWords([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseWordsErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"bad json", "json", `{"text": "go"}`},
		{"bad toml", "toml", `[[words]`},
		{"unknown format", "yaml", `- go`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWords([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, werrors.Is(err, werrors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestLoadWords(t *testing.T) {
	path := writeTemp(t, "words.TOML", "[[words]]\ntext = \"go\"\nvalue = 1\n")
	words, err := loadWords(path)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "go", words[0].RawText)

	_, err = loadWords(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, werrors.ErrCodeFileNotFound, werrors.GetCode(err))
}

package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// wordRecord is one entry of a word list file.
//
// JSON:
//
//	[{"text": "go", "display": "Go", "value": 42, "meta": {"lang": true}}]
//
// TOML:
//
//	[[words]]
//	text = "go"
//	value = 42
type wordRecord struct {
	Text    string         `json:"text" toml:"text"`
	Display string         `json:"display,omitempty" toml:"display"`
	Value   float64        `json:"value" toml:"value"`
	Meta    map[string]any `json:"meta,omitempty" toml:"meta"`
}

type tomlWords struct {
	Words []wordRecord `toml:"words"`
}

// loadWords reads a word list. The format follows the extension: .toml is
// TOML, anything else is JSON. "-" reads JSON from stdin.
func loadWords(path string) ([]layout.Word, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "word list %s", path)
		}
		return nil, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "read word list %s", path)
	}
	format := "json"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	return parseWords(data, format)
}

// parseWords decodes a word list in the given format.
func parseWords(data []byte, format string) ([]layout.Word, error) {
	var records []wordRecord
	switch format {
	case "json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, werrors.Wrap(werrors.ErrCodeInvalidFormat, err, "parse JSON word list")
		}
	case "toml":
		var doc tomlWords
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, werrors.Wrap(werrors.ErrCodeInvalidFormat, err, "parse TOML word list")
		}
		records = doc.Words
	default:
		return nil, werrors.New(werrors.ErrCodeInvalidFormat, "unsupported word list format %q", format)
	}

	words := make([]layout.Word, len(records))
	for i, r := range records {
		words[i] = layout.Word{RawText: r.Text, DisplayText: r.Display, Value: r.Value, Meta: r.Meta}
	}
	return words, nil
}

package chart

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/piechart/pkg/errors"
)

type jsonDataset struct {
	Title   string     `json:"title"`
	Entries []rawEntry `json:"entries"`
}

// readJSON accepts {"title": ..., "entries": [...]} or a bare entry array.
func readJSON(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read dataset")
	}

	var doc jsonDataset
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = decodeJSON(trimmed, &doc.Entries)
	} else {
		err = decodeJSON(trimmed, &doc)
	}
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json dataset")
	}

	entries, err := toEntries(doc.Entries)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Title: doc.Title, Entries: entries}, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// MarshalDataset serializes a dataset to pretty-printed JSON.
func MarshalDataset(d Dataset) ([]byte, error) {
	type entry struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
		Color string  `json:"color,omitempty"`
	}
	out := struct {
		Title   string  `json:"title,omitempty"`
		Entries []entry `json:"entries"`
	}{Title: d.Title, Entries: make([]entry, len(d.Entries))}
	for i, e := range d.Entries {
		out.Entries[i] = entry{Name: e.Name, Value: e.Value, Color: e.Color}
	}
	return json.MarshalIndent(out, "", "  ")
}

package chart

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatTOML    Format = "toml"
	FormatMermaid Format = "mermaid"
)

// Dataset is an ordered collection of entries with an optional title.
type Dataset struct {
	Title   string      `json:"title,omitempty"`
	Entries []pie.Entry `json:"entries"`
}

// Validate checks entry names and explicit colours. Values are checked by
// the layout engine.
func (d Dataset) Validate() error {
	for i, e := range d.Entries {
		if err := errors.ValidateLabel(e.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidEntry, err, "entry %d", i)
		}
		if e.Color != "" {
			if err := errors.ValidateColor(e.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidColor, err, "entry %d (%q)", i, e.Name)
			}
		}
	}
	return nil
}

// DetectFormat returns the dataset format for a file path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".pie", ".mmd", ".mermaid":
		return FormatMermaid, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"cannot detect dataset format of %q (use .json, .toml, .pie, .mmd or .mermaid)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatTOML, FormatMermaid:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q (must be json, toml or mermaid)", s)
}

// ReadDatasetFile reads and validates a dataset, choosing the format from
// the file extension.
func ReadDatasetFile(path string) (Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Dataset{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Dataset{}, errors.Wrap(errors.ErrCodeNotFound, err, "dataset %s", path)
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadDataset(f, format)
}

// ReadDataset decodes and validates a dataset from r.
func ReadDataset(r io.Reader, format Format) (Dataset, error) {
	var (
		ds  Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = readJSON(r)
	case FormatTOML:
		ds, err = readTOML(r)
	case FormatMermaid:
		ds, err = readMermaid(r)
	default:
		_, err = ParseFormat(string(format))
	}
	if err != nil {
		return Dataset{}, err
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// ParseDataset decodes a dataset from memory.
func ParseDataset(data []byte, format Format) (Dataset, error) {
	return ReadDataset(bytes.NewReader(data), format)
}

// rawEntry is the decoded form of one entry before its value is coerced.
type rawEntry struct {
	Name  string `json:"name" toml:"name"`
	Value any    `json:"value" toml:"value"`
	Color string `json:"color,omitempty" toml:"color"`
}

func toEntries(raw []rawEntry) ([]pie.Entry, error) {
	entries := make([]pie.Entry, len(raw))
	for i, r := range raw {
		v, err := coerceValue(i, r.Name, r.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = pie.Entry{Name: r.Name, Value: v, Color: r.Color}
	}
	return entries, nil
}

// coerceValue accepts the value shapes produced by the JSON and TOML
// decoders, including numeric strings.
func coerceValue(i int, name string, raw any) (float64, error) {
	invalid := func(reason string) error {
		return errors.Wrap(errors.ErrCodeInvalidEntry,
			&pie.InvalidEntryError{Index: i, Name: name, Reason: reason}, "dataset")
	}

	switch v := raw.(type) {
	case nil:
		return 0, invalid(pie.ReasonMissing)
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, invalid(pie.ReasonNotNumber)
		}
		return f, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, invalid(pie.ReasonMissing)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, invalid(pie.ReasonNotNumber)
		}
		return f, nil
	}
	return 0, invalid(pie.ReasonNotNumber)
}

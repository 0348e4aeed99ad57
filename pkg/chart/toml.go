package chart

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/piechart/pkg/errors"
)

type tomlDataset struct {
	Title   string     `toml:"title"`
	Entries []rawEntry `toml:"entries"`
}

// readTOML decodes a title plus [[entries]] tables. Unknown keys are
// rejected so typos such as "vaule" do not silently become missing values.
func readTOML(r io.Reader) (Dataset, error) {
	var doc tomlDataset
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml dataset")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys in toml dataset: %s", strings.Join(keys, ", "))
	}

	entries, err := toEntries(doc.Entries)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Title: doc.Title, Entries: entries}, nil
}

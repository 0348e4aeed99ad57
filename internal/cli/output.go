package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/piechart/pkg/errors"
	"github.com/matzehuels/piechart/pkg/pipeline"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout"

// artifactWriteParams describes rendered output to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to output
// when set; otherwise files are named <base>.<format>, with JSON layouts
// named <base>.layout.json like the layout command writes them.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	base := basePath(p.output, p.input)

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return errors.New(errors.ErrCodeInternal, "renderer produced no %s output", format)
		}

		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + layoutSuffix + ".json"
		}
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	status := iconFresh
	if p.cacheHit {
		status = iconCached
	}
	printDetail("%s", status)
	return nil
}

// basePath derives the base output path. Without an output it strips the
// extension (and a ".layout" marker) from input; otherwise it strips a
// known format extension from output.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, layoutSuffix)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// layoutPath returns the default layout file for a dataset path.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + layoutSuffix + ".json"
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

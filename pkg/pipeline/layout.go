package pipeline

import (
	stderrors "errors"

	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

// GenerateLayout validates ds and computes its layout.
//
// An entry with an unusable value fails the whole layout with an
// INVALID_ENTRY error that still unwraps to *pie.InvalidEntryError.
// Warnings such as a zero total are logged and kept on the layout.
func GenerateLayout(ds chart.Dataset, opts Options) (chart.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Layout{}, err
	}
	ds = opts.WithTitle(ds)
	if err := ds.Validate(); err != nil {
		return chart.Layout{}, err
	}

	l, err := pie.Compute(ds.Entries, opts.Config())
	if err != nil {
		var invalid *pie.InvalidEntryError
		if stderrors.As(err, &invalid) {
			return chart.Layout{}, errors.Wrap(errors.ErrCodeInvalidEntry, err, "layout")
		}
		return chart.Layout{}, err
	}

	for _, w := range l.Warnings {
		opts.Logger.Warn("chart has no visible slices", "code", w.Code, "detail", w.Message)
	}
	return chart.Export(l, ds.Title), nil
}

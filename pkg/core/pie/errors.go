package pie

import "fmt"

// Reasons reported by InvalidEntryError.
const (
	ReasonNegative  = "value is negative"
	ReasonNotFinite = "value is not finite"
	ReasonMissing   = "value is missing"
	ReasonNotNumber = "value is not a number"
)

// InvalidEntryError reports an entry whose value cannot be placed on the
// chart. A layout that encounters one fails as a whole.
type InvalidEntryError struct {
	Index  int
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidEntryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("entry %d (%q): %s", e.Index, e.Name, e.Reason)
}

// WarningCode identifies a non-fatal condition found during layout.
type WarningCode string

const (
	// WarnDegenerateChart means all values sum to zero; every slice has zero
	// width and the renderer decides how to show the empty chart.
	WarnDegenerateChart WarningCode = "DEGENERATE_CHART"

	// WarnEmptyChart means there were no entries at all.
	WarnEmptyChart WarningCode = "EMPTY_CHART"
)

// Warning is an advisory attached to a Layout.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string { return string(w.Code) + ": " + w.Message }

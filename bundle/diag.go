package bundle

import "github.com/wippyai/unbundle/errors"

// Diagnostics collects non-fatal findings from the pipeline components.
// Components append to it instead of writing to shared console state;
// the emitter aggregates and logs the collected warnings at the end of a
// run.
type Diagnostics struct {
	warnings []*errors.Error
}

// Add records a warning.
func (d *Diagnostics) Add(err *errors.Error) {
	d.warnings = append(d.warnings, err)
}

// Warnings returns the collected warnings in the order recorded.
func (d *Diagnostics) Warnings() []*errors.Error {
	return d.warnings
}

// Len reports the number of collected warnings.
func (d *Diagnostics) Len() int {
	return len(d.warnings)
}

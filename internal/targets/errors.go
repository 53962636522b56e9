package targets

import "fmt"

// WriteError is returned when rows could not be written to the table.
type WriteError struct {
	Table string
	// Failed is the number of rows known not to have been written.
	Failed int
	Err    error
}

func (e *WriteError) Error() string {
	if e.Failed > 0 {
		return fmt.Sprintf("writing to table %s: %d items not written: %v", e.Table, e.Failed, e.Err)
	}
	return fmt.Sprintf("writing to table %s: %v", e.Table, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

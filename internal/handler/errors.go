package handler

import "fmt"

// SourceNotFoundError reports a report path that does not exist or cannot be read.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %s not found or unreadable: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// MalformedDocumentError reports input that cannot be parsed as the expected
// format. Record is empty when the document as a whole is unreadable.
type MalformedDocumentError struct {
	Source string
	Record string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	switch {
	case e.Record == "":
		return fmt.Sprintf("malformed document %s: %v", e.Source, e.Err)
	case e.Source == "":
		return fmt.Sprintf("malformed %s: %v", e.Record, e.Err)
	default:
		return fmt.Sprintf("malformed %s in %s: %v", e.Record, e.Source, e.Err)
	}
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field absent from an otherwise
// parseable record. Record identifies the element or array position, or
// "document" for top-level fields.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Record, e.Field)
}

// SinkWriteError reports a failure to persist the output table.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// UnitMismatchError reports a benchmark whose time_unit differs from the
// unit the conversion was configured for.
type UnitMismatchError struct {
	Record string
	Want   string
	Got    string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("%s: time_unit %q does not match expected unit %q", e.Record, e.Got, e.Want)
}

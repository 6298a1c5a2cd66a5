package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNoItems        = errors.New("no news items to process")
	ErrEmptyResponse  = errors.New("empty response body")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrStoreClosed    = errors.New("store is closed")
	ErrUnknownSection = errors.New("unknown report section")
	ErrUnknownFormat  = errors.New("unknown output format")
)

// SourceError wraps a network or parse failure while fetching a source or
// article page. Recovered locally: the source contributes zero items.
type SourceError struct {
	Source string
	URL    string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q (%s): %v", e.Source, e.URL, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// AttachmentError wraps a size/type/timeout violation on a candidate
// attachment. Recovered locally: the attachment is dropped, siblings
// continue.
type AttachmentError struct {
	URL    string
	Reason string
	Err    error
}

func (e *AttachmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attachment %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("attachment %s: %s", e.URL, e.Reason)
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// ConfigError reports a required or out-of-range configuration value. It is
// the only error class fatal to a whole run, raised before any network
// activity.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// StageError wraps an unexpected failure inside an item's enrichment or a
// source's harvest. Caught at the unit boundary; the run continues.
type StageError struct {
	Stage string
	Unit  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s (%s): %v", e.Stage, e.Unit, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

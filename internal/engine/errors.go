package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrChannelNotFound is returned when a channel id resolves to no items.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrPrerequisiteMissing matches every *PrerequisiteError.
	ErrPrerequisiteMissing = errors.New("prerequisite missing")

	// ErrEmptyCompletion is returned when the model answers with blank text.
	ErrEmptyCompletion = errors.New("empty completion")

	// ErrNoSession is returned by stage operations before a channel is locked.
	ErrNoSession = errors.New("no channel locked")
)

// PartialCollectionError reports a collection that finished with gaps.
// The partial result it accompanies is usable.
type PartialCollectionError struct {
	Op        string
	Requested int
	Collected int
	Failed    int
	Errs      []error
}

func (e *PartialCollectionError) Error() string {
	msg := fmt.Sprintf("%s: partial collection, %d of %d collected, %d failed",
		e.Op, e.Collected, e.Requested, e.Failed)
	if len(e.Errs) > 0 {
		msg += ": " + e.Errs[0].Error()
		if len(e.Errs) > 1 {
			msg += fmt.Sprintf(" (and %d more)", len(e.Errs)-1)
		}
	}
	return msg
}

func (e *PartialCollectionError) Unwrap() []error { return e.Errs }

// Missing returns how many requested items were not collected.
func (e *PartialCollectionError) Missing() int {
	return e.Requested - e.Collected
}

// ExternalCallError wraps a failure of an external collaborator
// (video platform, LLM, document store).
type ExternalCallError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalCallError) Error() string {
	return e.Service + " " + e.Op + ": " + e.Err.Error()
}

func (e *ExternalCallError) Unwrap() error { return e.Err }

// PrerequisiteError is returned when a stage is entered before the
// artifacts it depends on exist.
type PrerequisiteError struct {
	Stage   string
	Missing []string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: prerequisite missing: %s", e.Stage, strings.Join(e.Missing, ", "))
}

func (e *PrerequisiteError) Is(target error) bool { return target == ErrPrerequisiteMissing }

// ValidationError is an operator input outside the accepted range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

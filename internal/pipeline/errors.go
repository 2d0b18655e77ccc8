// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "fmt"

// RetrievalError means no candidates could be fetched at all. Individual
// keyword failures are tolerated; this fires only when retrieval as a
// whole produced nothing usable.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return fmt.Sprintf("retrieval failed: %v", e.Err) }
func (e *RetrievalError) Unwrap() error { return e.Err }

// SummarizationError means not a single selected paper could be
// summarized. Partial failure is tolerated and only logged.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string { return fmt.Sprintf("summarization failed: %v", e.Err) }
func (e *SummarizationError) Unwrap() error { return e.Err }

// PersistenceError means the run's outcome could not be recorded. Fatal:
// an unrecorded run would resurface the same papers next time.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persistence failed: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError means at least one delivery channel failed after the
// run was already persisted.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return fmt.Sprintf("notification failed: %v", e.Err) }
func (e *NotificationError) Unwrap() error { return e.Err }

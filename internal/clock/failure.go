package clock

import (
	"errors"
	"fmt"
	"time"
)

// Kind tags every way a lifecycle operation can fail, so callers switch on
// the kind instead of matching message strings or catching a generic error.
type Kind string

const (
	KindEmployeeNotFound       Kind = "employee_not_found"
	KindEmployeeInactive       Kind = "employee_inactive"
	KindAlreadyClockedIn       Kind = "already_clocked_in"
	KindNotClockedIn           Kind = "not_clocked_in"
	KindTooSoon                Kind = "too_soon"
	KindCooldownActive         Kind = "cooldown_active"
	KindMaxDurationExceeded    Kind = "max_duration_exceeded"
	KindShiftNotFound          Kind = "shift_not_found"
	KindNegativeOrZeroDuration Kind = "negative_or_zero_duration"
	KindManagerAuthRequired    Kind = "manager_auth_required"
	KindPersistenceFailed      Kind = "persistence_failed"
)

// Failure is the tagged result returned for every rejected operation.
// Validation kinds are user-recoverable and never retried automatically;
// KindPersistenceFailed is safe to retry because nothing was persisted.
type Failure struct {
	Kind    Kind
	Message string
	// Remaining and NextAllowed are set for KindCooldownActive so the UI can
	// show the exact wait and the instant clock-in becomes legal again.
	Remaining   time.Duration
	NextAllowed time.Time
	Err         error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf extracts the failure kind from an error chain, or "" when the error
// is not a lifecycle failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// AsFailure returns the Failure in an error chain, or nil.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return nil
}

func failf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func persistenceFailure(err error) *Failure {
	return &Failure{Kind: KindPersistenceFailed, Message: "could not persist the operation, please try again", Err: err}
}

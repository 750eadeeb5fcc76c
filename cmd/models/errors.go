package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrDoctorInUse is returned when deleting a doctor that still has
// appointments while the restrict policy is active.
var ErrDoctorInUse = errors.New("doctor has existing appointments")

// ValidationError reports a malformed or out-of-range field. It is always
// raised before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DuplicateKeyError reports a natural-key clash (national ID, license number).
type DuplicateKeyError struct {
	Entity string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with key %q already registered", e.Entity, e.Key)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// SlotConflictError reports a doctor double-booking: another appointment is
// already SCHEDULED for the same doctor at the same instant.
type SlotConflictError struct {
	DoctorID uint
	At       time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("doctor %d already has a scheduled appointment at %s", e.DoctorID, e.At.Format(time.RFC3339))
}

// InvalidTransitionError reports an illegal status change.
type InvalidTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change appointment status from %s to %s", e.From, e.To)
}

// InvalidDateError reports a timestamp that violates the scheduling rules,
// e.g. an appointment placed in the past.
type InvalidDateError struct {
	At      time.Time
	Message string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %s: %s", e.At.Format(time.RFC3339), e.Message)
}

// InvalidArgumentError reports a missing or unusable argument, e.g. an empty
// transition target.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusAttended  AppointmentStatus = "ATTENDED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusAttended, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to the target
// status. SCHEDULED may move to ATTENDED or CANCELLED; both of those are
// terminal, and self-transitions are not allowed.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	return s == StatusScheduled && (target == StatusAttended || target == StatusCancelled)
}

type Appointment struct {
	gorm.Model
	Reference string            `gorm:"column:reference;size:36;uniqueIndex;not null" json:"reference"`
	DateTime  time.Time         `gorm:"column:datetime;not null;index;index:idx_doctor_slot,unique,where:status = 'SCHEDULED'" json:"datetime"`
	Status    AppointmentStatus `gorm:"column:status;size:20;not null;default:'SCHEDULED'" json:"status"`
	Reason    string            `gorm:"column:reason;size:200" json:"reason,omitempty"`
	PatientID uint              `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID  uint              `gorm:"column:doctor_id;not null;index;index:idx_doctor_slot,unique,where:status = 'SCHEDULED',priority:1" json:"doctor_id"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// SameSlot is the structural equality of the domain: two appointments are the
// same booking when they name the same patient, doctor and instant,
// independent of their surrogate ids.
func (a *Appointment) SameSlot(b *Appointment) bool {
	return a.DateTime.Equal(b.DateTime) && a.PatientID == b.PatientID && a.DoctorID == b.DoctorID
}

func (a *Appointment) Validate() error {
	if a.DateTime.IsZero() {
		return &ValidationError{Field: "datetime", Message: "appointment time is required"}
	}
	if !a.Status.IsValid() {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}
	if a.PatientID == 0 {
		return &ValidationError{Field: "patient_id", Message: "patient is required"}
	}
	if a.DoctorID == 0 {
		return &ValidationError{Field: "doctor_id", Message: "doctor is required"}
	}
	return optionalLen("reason", a.Reason, 200)
}

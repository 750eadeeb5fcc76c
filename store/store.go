package store

import (
	"errors"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
)

// ErrDuplicateKey is the storage-level signal for a violated unique index.
// Services translate it into the domain error that fits the operation
// (DuplicateKeyError for natural keys, SlotConflictError for the slot index).
var ErrDuplicateKey = errors.New("duplicate key")

// Store is the persistence boundary of the system. Lookups return (nil, nil)
// when the record is absent; callers decide whether absence is an error.
//
// Atomically runs fn inside one transaction: either every write made through
// the passed Store is committed, or none is. The slot invariant (at most one
// SCHEDULED appointment per doctor and instant) and natural-key uniqueness
// are enforced by every implementation, so a losing concurrent writer gets
// ErrDuplicateKey.
type Store interface {
	Atomically(fn func(Store) error) error

	CreatePatient(p *models.Patient) error
	SavePatient(p *models.Patient) error
	PatientByID(id uint) (*models.Patient, error)
	PatientByNationalID(nationalID string) (*models.Patient, error)
	Patients(offset, limit int) ([]models.Patient, int64, error)
	DeletePatient(id uint) (bool, error)

	CreateDoctor(d *models.Doctor) error
	SaveDoctor(d *models.Doctor) error
	DoctorByID(id uint) (*models.Doctor, error)
	DoctorByLicense(license string) (*models.Doctor, error)
	Doctors(offset, limit int) ([]models.Doctor, int64, error)
	DoctorsBySpecialty(specialty models.Specialty) ([]models.Doctor, error)
	DeleteDoctor(id uint) (bool, error)

	HistoryByPatient(patientID uint) (*models.MedicalHistory, error)
	SaveHistory(h *models.MedicalHistory) error
	DeleteHistoryByPatient(patientID uint) error

	CreateAppointment(a *models.Appointment) error
	SaveAppointment(a *models.Appointment) error
	AppointmentByID(id uint) (*models.Appointment, error)
	DeleteAppointment(id uint) (bool, error)
	DeleteAppointmentsByPatient(patientID uint) error
	DeleteAppointmentsByDoctor(doctorID uint) error
	CountAppointmentsByDoctor(doctorID uint) (int64, error)

	// HasScheduledAt reports whether a SCHEDULED appointment occupies the
	// (doctor, instant) slot. excludeID skips one appointment, so an update
	// does not conflict with itself; pass 0 to check all.
	HasScheduledAt(doctorID uint, at time.Time, excludeID uint) (bool, error)

	Appointments(offset, limit int) ([]models.Appointment, int64, error)
	AppointmentsByPatient(patientID uint) ([]models.Appointment, error)
	UpcomingByDoctor(doctorID uint, from time.Time) ([]models.Appointment, error)
	AppointmentsInRange(from, to time.Time) ([]models.Appointment, error)
	AppointmentsByStatus(status models.AppointmentStatus) ([]models.Appointment, error)
}

package appointment

import (
	"errors"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/service/notify"
	"github.com/NtowKwame/hospital-server/store"
	"github.com/google/uuid"
)

// Service owns the scheduling rules: the slot conflict check, the status
// lifecycle and the creation-time validation. Every write runs inside one
// store transaction.
type Service struct {
	store  store.Store
	mailer *notify.Mailer
}

func NewService(st store.Store, mailer *notify.Mailer) *Service {
	return &Service{store: st, mailer: mailer}
}

// CanSchedule reports whether the (doctor, at) slot is free. excludeID lets a
// reschedule ignore the appointment being moved; pass 0 otherwise.
func (s *Service) CanSchedule(doctorID uint, at time.Time, excludeID uint) (bool, error) {
	taken, err := s.store.HasScheduledAt(doctorID, at, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// Schedule books a new appointment in status SCHEDULED. The timestamp must be
// strictly in the future, both referents must exist, and the doctor's slot
// must be free.
func (s *Service) Schedule(patientID, doctorID uint, at time.Time, reason string) (*models.Appointment, error) {
	if !at.After(time.Now()) {
		return nil, &models.InvalidDateError{At: at, Message: "appointment must be scheduled in the future"}
	}

	var (
		appt    *models.Appointment
		patient *models.Patient
		doctor  *models.Doctor
	)
	err := s.store.Atomically(func(tx store.Store) error {
		var err error
		patient, err = tx.PatientByID(patientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return &models.NotFoundError{Entity: "patient", ID: patientID}
		}
		doctor, err = tx.DoctorByID(doctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return &models.NotFoundError{Entity: "doctor", ID: doctorID}
		}

		taken, err := tx.HasScheduledAt(doctorID, at, 0)
		if err != nil {
			return err
		}
		if taken {
			return &models.SlotConflictError{DoctorID: doctorID, At: at}
		}

		a := &models.Appointment{
			Reference: uuid.NewString(),
			DateTime:  at,
			Status:    models.StatusScheduled,
			Reason:    reason,
			PatientID: patientID,
			DoctorID:  doctorID,
		}
		if err := a.Validate(); err != nil {
			return err
		}
		if err := tx.CreateAppointment(a); err != nil {
			// The partial unique index on (doctor_id, datetime) is the source
			// of truth; a losing concurrent insert lands here.
			if errors.Is(err, store.ErrDuplicateKey) {
				return &models.SlotConflictError{DoctorID: doctorID, At: at}
			}
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mailer.AppointmentScheduled(patient.Email, doctor.FullName, appt.Reference, at)
	return appt, nil
}

// Reschedule moves a SCHEDULED appointment to a new future instant, re-running
// the conflict check with the appointment itself excluded.
func (s *Service) Reschedule(id uint, newAt time.Time) (*models.Appointment, error) {
	if !newAt.After(time.Now()) {
		return nil, &models.InvalidDateError{At: newAt, Message: "appointment must be scheduled in the future"}
	}

	var appt *models.Appointment
	err := s.store.Atomically(func(tx store.Store) error {
		a, err := tx.AppointmentByID(id)
		if err != nil {
			return err
		}
		if a == nil {
			return &models.NotFoundError{Entity: "appointment", ID: id}
		}
		if a.Status != models.StatusScheduled {
			return &models.InvalidTransitionError{From: a.Status, To: models.StatusScheduled}
		}

		taken, err := tx.HasScheduledAt(a.DoctorID, newAt, a.ID)
		if err != nil {
			return err
		}
		if taken {
			return &models.SlotConflictError{DoctorID: a.DoctorID, At: newAt}
		}

		a.DateTime = newAt
		if err := tx.SaveAppointment(a); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return &models.SlotConflictError{DoctorID: a.DoctorID, At: newAt}
			}
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// ChangeStatus applies a lifecycle transition. Only SCHEDULED appointments can
// move, and only to ATTENDED or CANCELLED.
func (s *Service) ChangeStatus(id uint, target models.AppointmentStatus) (*models.Appointment, error) {
	if target == "" {
		return nil, &models.InvalidArgumentError{Message: "target status is required"}
	}
	if !target.IsValid() {
		return nil, &models.ValidationError{Field: "status", Message: "unknown status"}
	}

	var (
		appt    *models.Appointment
		patient *models.Patient
		doctor  *models.Doctor
	)
	err := s.store.Atomically(func(tx store.Store) error {
		a, err := tx.AppointmentByID(id)
		if err != nil {
			return err
		}
		if a == nil {
			return &models.NotFoundError{Entity: "appointment", ID: id}
		}
		if !a.Status.CanTransitionTo(target) {
			return &models.InvalidTransitionError{From: a.Status, To: target}
		}

		a.Status = target
		if err := tx.SaveAppointment(a); err != nil {
			return err
		}
		appt = a

		if target == models.StatusCancelled {
			patient, _ = tx.PatientByID(a.PatientID)
			doctor, _ = tx.DoctorByID(a.DoctorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if target == models.StatusCancelled && patient != nil && doctor != nil {
		s.mailer.AppointmentCancelled(patient.Email, doctor.FullName, appt.Reference, appt.DateTime)
	}
	return appt, nil
}

// Delete removes one appointment and nothing else. Returns false when the id
// does not exist.
func (s *Service) Delete(id uint) (bool, error) {
	return s.store.DeleteAppointment(id)
}

func (s *Service) Get(id uint) (*models.Appointment, error) {
	return s.store.AppointmentByID(id)
}

func (s *Service) List(offset, limit int) ([]models.Appointment, int64, error) {
	return s.store.Appointments(offset, limit)
}

func (s *Service) ListByPatient(patientID uint) ([]models.Appointment, error) {
	return s.store.AppointmentsByPatient(patientID)
}

// UpcomingByDoctor lists the doctor's SCHEDULED appointments from now on.
func (s *Service) UpcomingByDoctor(doctorID uint) ([]models.Appointment, error) {
	return s.store.UpcomingByDoctor(doctorID, time.Now())
}

func (s *Service) ListInRange(from, to time.Time) ([]models.Appointment, error) {
	return s.store.AppointmentsInRange(from, to)
}

func (s *Service) ListByStatus(status models.AppointmentStatus) ([]models.Appointment, error) {
	return s.store.AppointmentsByStatus(status)
}

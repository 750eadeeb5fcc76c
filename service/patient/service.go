package patient

import (
	"errors"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/store"
)

// Service manages patient identity records and owns the deletion cascade:
// removing a patient also removes their medical history and every one of
// their appointments, in a single transaction.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

type RegisterRequest struct {
	FullName    string    `json:"full_name"`
	NationalID  string    `json:"national_id"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
}

// Register validates the field constraints and creates the patient. The
// national ID pre-check gives a specific DuplicateKeyError; the unique index
// underneath stays the source of truth.
func (s *Service) Register(req RegisterRequest) (*models.Patient, error) {
	p := &models.Patient{
		FullName:    req.FullName,
		NationalID:  req.NationalID,
		DateOfBirth: req.DateOfBirth,
		Phone:       req.Phone,
		Email:       req.Email,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err := s.store.Atomically(func(tx store.Store) error {
		existing, err := tx.PatientByNationalID(p.NationalID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &models.DuplicateKeyError{Entity: "patient", Key: p.NationalID}
		}
		if err := tx.CreatePatient(p); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return &models.DuplicateKeyError{Entity: "patient", Key: p.NationalID}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update rewrites the patient's fields under the same constraints as
// registration.
func (s *Service) Update(id uint, req RegisterRequest) (*models.Patient, error) {
	var updated *models.Patient
	err := s.store.Atomically(func(tx store.Store) error {
		p, err := tx.PatientByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return &models.NotFoundError{Entity: "patient", ID: id}
		}

		p.FullName = req.FullName
		p.NationalID = req.NationalID
		p.DateOfBirth = req.DateOfBirth
		p.Phone = req.Phone
		p.Email = req.Email
		if err := p.Validate(); err != nil {
			return err
		}

		existing, err := tx.PatientByNationalID(p.NationalID)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return &models.DuplicateKeyError{Entity: "patient", Key: p.NationalID}
		}

		if err := tx.SavePatient(p); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return &models.DuplicateKeyError{Entity: "patient", Key: p.NationalID}
			}
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the patient together with their medical history and all of
// their appointments, whatever their status. Doctors referenced by those
// appointments are never touched. Returns false when the id does not exist.
func (s *Service) Delete(id uint) (bool, error) {
	deleted := false
	err := s.store.Atomically(func(tx store.Store) error {
		p, err := tx.PatientByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if err := tx.DeleteHistoryByPatient(id); err != nil {
			return err
		}
		if err := tx.DeleteAppointmentsByPatient(id); err != nil {
			return err
		}
		if _, err := tx.DeletePatient(id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (s *Service) Get(id uint) (*models.Patient, error) {
	return s.store.PatientByID(id)
}

func (s *Service) GetByNationalID(nationalID string) (*models.Patient, error) {
	return s.store.PatientByNationalID(nationalID)
}

func (s *Service) List(offset, limit int) ([]models.Patient, int64, error) {
	return s.store.Patients(offset, limit)
}

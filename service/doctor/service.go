package doctor

import (
	"errors"
	"os"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/store"
)

// DeletePolicy decides what happens to a doctor's appointments when the
// doctor is deleted.
type DeletePolicy string

const (
	// DeleteRestrict rejects deletion while any appointment references the
	// doctor. This is the default.
	DeleteRestrict DeletePolicy = "restrict"
	// DeleteCascade removes the doctor's appointments first.
	DeleteCascade DeletePolicy = "cascade"
)

// PolicyFromEnv reads DOCTOR_DELETE_POLICY; anything but "cascade" means
// restrict.
func PolicyFromEnv() DeletePolicy {
	if os.Getenv("DOCTOR_DELETE_POLICY") == string(DeleteCascade) {
		return DeleteCascade
	}
	return DeleteRestrict
}

type Service struct {
	store  store.Store
	policy DeletePolicy
}

func NewService(st store.Store, policy DeletePolicy) *Service {
	return &Service{store: st, policy: policy}
}

type RegisterRequest struct {
	FullName      string           `json:"full_name"`
	LicenseNumber string           `json:"license_number"`
	Specialty     models.Specialty `json:"specialty"`
	Email         string           `json:"email"`
}

func (s *Service) Register(req RegisterRequest) (*models.Doctor, error) {
	d := &models.Doctor{
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Specialty:     req.Specialty,
		Email:         req.Email,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	err := s.store.Atomically(func(tx store.Store) error {
		existing, err := tx.DoctorByLicense(d.LicenseNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return &models.DuplicateKeyError{Entity: "doctor", Key: d.LicenseNumber}
		}
		if err := tx.CreateDoctor(d); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return &models.DuplicateKeyError{Entity: "doctor", Key: d.LicenseNumber}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(id uint, req RegisterRequest) (*models.Doctor, error) {
	var updated *models.Doctor
	err := s.store.Atomically(func(tx store.Store) error {
		d, err := tx.DoctorByID(id)
		if err != nil {
			return err
		}
		if d == nil {
			return &models.NotFoundError{Entity: "doctor", ID: id}
		}

		d.FullName = req.FullName
		d.LicenseNumber = req.LicenseNumber
		d.Specialty = req.Specialty
		d.Email = req.Email
		if err := d.Validate(); err != nil {
			return err
		}

		existing, err := tx.DoctorByLicense(d.LicenseNumber)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return &models.DuplicateKeyError{Entity: "doctor", Key: d.LicenseNumber}
		}

		if err := tx.SaveDoctor(d); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return &models.DuplicateKeyError{Entity: "doctor", Key: d.LicenseNumber}
			}
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a doctor. Under the restrict policy a doctor with
// appointments cannot be deleted; under cascade their appointments go first.
// An appointment's patient is never touched either way.
func (s *Service) Delete(id uint) (bool, error) {
	deleted := false
	err := s.store.Atomically(func(tx store.Store) error {
		d, err := tx.DoctorByID(id)
		if err != nil {
			return err
		}
		if d == nil {
			return nil
		}

		count, err := tx.CountAppointmentsByDoctor(id)
		if err != nil {
			return err
		}
		if count > 0 {
			if s.policy == DeleteRestrict {
				return models.ErrDoctorInUse
			}
			if err := tx.DeleteAppointmentsByDoctor(id); err != nil {
				return err
			}
		}

		if _, err := tx.DeleteDoctor(id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (s *Service) Get(id uint) (*models.Doctor, error) {
	return s.store.DoctorByID(id)
}

func (s *Service) GetByLicense(license string) (*models.Doctor, error) {
	return s.store.DoctorByLicense(license)
}

func (s *Service) List(offset, limit int) ([]models.Doctor, int64, error) {
	return s.store.Doctors(offset, limit)
}

func (s *Service) ListBySpecialty(specialty models.Specialty) ([]models.Doctor, error) {
	return s.store.DoctorsBySpecialty(specialty)
}

package store

import (
	"errors"
	"strings"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Atomically(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
		return ErrDuplicateKey
	}
	return err
}

func (s *GormStore) CreatePatient(p *models.Patient) error {
	return translate(s.db.Create(p).Error)
}

func (s *GormStore) SavePatient(p *models.Patient) error {
	return translate(s.db.Save(p).Error)
}

func (s *GormStore) PatientByID(id uint) (*models.Patient, error) {
	var p models.Patient
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) PatientByNationalID(nationalID string) (*models.Patient, error) {
	var p models.Patient
	if err := s.db.Where("national_id = ?", nationalID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) Patients(offset, limit int) ([]models.Patient, int64, error) {
	var total int64
	if err := s.db.Model(&models.Patient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var patients []models.Patient
	if err := s.db.Order("full_name").Offset(offset).Limit(limit).Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (s *GormStore) DeletePatient(id uint) (bool, error) {
	result := s.db.Unscoped().Delete(&models.Patient{}, id)
	return result.RowsAffected > 0, result.Error
}

func (s *GormStore) CreateDoctor(d *models.Doctor) error {
	return translate(s.db.Create(d).Error)
}

func (s *GormStore) SaveDoctor(d *models.Doctor) error {
	return translate(s.db.Save(d).Error)
}

func (s *GormStore) DoctorByID(id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := s.db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *GormStore) DoctorByLicense(license string) (*models.Doctor, error) {
	var d models.Doctor
	if err := s.db.Where("license_number = ?", license).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *GormStore) Doctors(offset, limit int) ([]models.Doctor, int64, error) {
	var total int64
	if err := s.db.Model(&models.Doctor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var doctors []models.Doctor
	if err := s.db.Order("full_name").Offset(offset).Limit(limit).Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (s *GormStore) DoctorsBySpecialty(specialty models.Specialty) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.db.Where("specialty = ?", specialty).Order("full_name").Find(&doctors).Error
	return doctors, err
}

func (s *GormStore) DeleteDoctor(id uint) (bool, error) {
	result := s.db.Unscoped().Delete(&models.Doctor{}, id)
	return result.RowsAffected > 0, result.Error
}

func (s *GormStore) HistoryByPatient(patientID uint) (*models.MedicalHistory, error) {
	var h models.MedicalHistory
	if err := s.db.Where("patient_id = ?", patientID).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (s *GormStore) SaveHistory(h *models.MedicalHistory) error {
	return translate(s.db.Save(h).Error)
}

func (s *GormStore) DeleteHistoryByPatient(patientID uint) error {
	return s.db.Where("patient_id = ?", patientID).Delete(&models.MedicalHistory{}).Error
}

func (s *GormStore) CreateAppointment(a *models.Appointment) error {
	return translate(s.db.Create(a).Error)
}

func (s *GormStore) SaveAppointment(a *models.Appointment) error {
	return translate(s.db.Save(a).Error)
}

func (s *GormStore) AppointmentByID(id uint) (*models.Appointment, error) {
	var a models.Appointment
	if err := s.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) DeleteAppointment(id uint) (bool, error) {
	result := s.db.Unscoped().Delete(&models.Appointment{}, id)
	return result.RowsAffected > 0, result.Error
}

func (s *GormStore) DeleteAppointmentsByPatient(patientID uint) error {
	return s.db.Unscoped().Where("patient_id = ?", patientID).Delete(&models.Appointment{}).Error
}

func (s *GormStore) DeleteAppointmentsByDoctor(doctorID uint) error {
	return s.db.Unscoped().Where("doctor_id = ?", doctorID).Delete(&models.Appointment{}).Error
}

func (s *GormStore) CountAppointmentsByDoctor(doctorID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	return count, err
}

func (s *GormStore) HasScheduledAt(doctorID uint, at time.Time, excludeID uint) (bool, error) {
	query := s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND datetime = ? AND status = ?", doctorID, at, models.StatusScheduled)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) Appointments(offset, limit int) ([]models.Appointment, int64, error) {
	var total int64
	if err := s.db.Model(&models.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var appointments []models.Appointment
	if err := s.db.Order("datetime").Offset(offset).Limit(limit).Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (s *GormStore) AppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("patient_id = ?", patientID).Order("datetime").Find(&appointments).Error
	return appointments, err
}

func (s *GormStore) UpcomingByDoctor(doctorID uint, from time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("doctor_id = ? AND datetime >= ? AND status = ?", doctorID, from, models.StatusScheduled).
		Order("datetime").Find(&appointments).Error
	return appointments, err
}

func (s *GormStore) AppointmentsInRange(from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("datetime >= ? AND datetime <= ?", from, to).
		Order("datetime").Find(&appointments).Error
	return appointments, err
}

func (s *GormStore) AppointmentsByStatus(status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("status = ?", status).Order("datetime").Find(&appointments).Error
	return appointments, err
}

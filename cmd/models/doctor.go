package models

import (
	"gorm.io/gorm"
)

type Specialty string

const (
	SpecialtyGeneralMedicine Specialty = "GENERAL_MEDICINE"
	SpecialtyCardiology      Specialty = "CARDIOLOGY"
	SpecialtyDermatology     Specialty = "DERMATOLOGY"
	SpecialtyNeurology       Specialty = "NEUROLOGY"
	SpecialtyOncology        Specialty = "ONCOLOGY"
	SpecialtyPediatrics      Specialty = "PEDIATRICS"
	SpecialtyPsychiatry      Specialty = "PSYCHIATRY"
	SpecialtyTraumatology    Specialty = "TRAUMATOLOGY"
)

func (s Specialty) IsValid() bool {
	switch s {
	case SpecialtyGeneralMedicine, SpecialtyCardiology, SpecialtyDermatology,
		SpecialtyNeurology, SpecialtyOncology, SpecialtyPediatrics,
		SpecialtyPsychiatry, SpecialtyTraumatology:
		return true
	}
	return false
}

type Doctor struct {
	gorm.Model
	FullName      string    `gorm:"column:full_name;size:100;not null" json:"full_name"`
	LicenseNumber string    `gorm:"column:license_number;size:20;uniqueIndex;not null" json:"license_number"`
	Specialty     Specialty `gorm:"column:specialty;size:50;not null" json:"specialty"`
	Email         string    `gorm:"column:email;size:100;not null" json:"email"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) Validate() error {
	if err := requireLen("full_name", d.FullName, 100); err != nil {
		return err
	}
	if err := requireLen("license_number", d.LicenseNumber, 20); err != nil {
		return err
	}
	if !d.Specialty.IsValid() {
		return &ValidationError{Field: "specialty", Message: "unknown specialty"}
	}
	return validateEmail(d.Email)
}

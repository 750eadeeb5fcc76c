package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	FullName    string    `gorm:"column:full_name;size:100;not null" json:"full_name"`
	NationalID  string    `gorm:"column:national_id;size:20;uniqueIndex;not null" json:"national_id"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Phone       string    `gorm:"column:phone;size:15" json:"phone,omitempty"`
	Email       string    `gorm:"column:email;size:100;not null" json:"email"`
}

func (Patient) TableName() string {
	return "patients"
}

// Validate checks the field constraints enforced at registration and update.
func (p *Patient) Validate() error {
	if err := requireLen("full_name", p.FullName, 100); err != nil {
		return err
	}
	if err := requireLen("national_id", p.NationalID, 20); err != nil {
		return err
	}
	if p.DateOfBirth.IsZero() {
		return &ValidationError{Field: "date_of_birth", Message: "date of birth is required"}
	}
	if p.DateOfBirth.After(time.Now()) {
		return &ValidationError{Field: "date_of_birth", Message: "date of birth cannot be in the future"}
	}
	if err := optionalLen("phone", p.Phone, 15); err != nil {
		return err
	}
	return validateEmail(p.Email)
}

package models

import "time"

// MedicalHistory shares its identity with the owning patient: patient_id is
// both primary key and foreign key, so a patient can carry at most one record.
type MedicalHistory struct {
	PatientID    uint      `gorm:"column:patient_id;primaryKey" json:"patient_id"`
	Allergies    string    `gorm:"column:allergies;size:500" json:"allergies,omitempty"`
	Background   string    `gorm:"column:background;size:1000" json:"background,omitempty"`
	Observations string    `gorm:"column:observations;size:1000" json:"observations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}

func (m *MedicalHistory) Validate() error {
	if err := optionalLen("allergies", m.Allergies, 500); err != nil {
		return err
	}
	if err := optionalLen("background", m.Background, 1000); err != nil {
		return err
	}
	return optionalLen("observations", m.Observations, 1000)
}

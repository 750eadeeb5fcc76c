package history

import (
	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/store"
)

// Service manages the zero-or-one medical history per patient. The record
// shares the patient's key; it is created or replaced explicitly here and
// removed only by the patient deletion cascade.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

type PutRequest struct {
	Allergies    string `json:"allergies"`
	Background   string `json:"background"`
	Observations string `json:"observations"`
}

// Put creates the patient's history or overwrites the existing one.
func (s *Service) Put(patientID uint, req PutRequest) (*models.MedicalHistory, error) {
	h := &models.MedicalHistory{
		PatientID:    patientID,
		Allergies:    req.Allergies,
		Background:   req.Background,
		Observations: req.Observations,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	err := s.store.Atomically(func(tx store.Store) error {
		p, err := tx.PatientByID(patientID)
		if err != nil {
			return err
		}
		if p == nil {
			return &models.NotFoundError{Entity: "patient", ID: patientID}
		}
		return tx.SaveHistory(h)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Get(patientID uint) (*models.MedicalHistory, error) {
	return s.store.HistoryByPatient(patientID)
}

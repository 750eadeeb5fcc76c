package history

import (
	"strings"
	"testing"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPatient(t *testing.T, mem *store.Memory) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		FullName:    "Ama Owusu",
		NationalID:  "GHA-1990-001",
		DateOfBirth: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Email:       "ama.owusu@example.com",
	}
	require.NoError(t, mem.CreatePatient(patient))
	return patient
}

func TestPutCreatesAndOverwrites(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	patient := seedPatient(t, mem)

	record, err := svc.Put(patient.ID, PutRequest{Allergies: "penicillin"})
	require.NoError(t, err)
	// Maps-id: the record carries the patient's own key.
	assert.Equal(t, patient.ID, record.PatientID)

	record, err = svc.Put(patient.ID, PutRequest{
		Allergies:    "penicillin, latex",
		Observations: "follow-up in six months",
	})
	require.NoError(t, err)

	found, err := svc.Get(patient.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "penicillin, latex", found.Allergies)
	assert.Equal(t, "follow-up in six months", found.Observations)
}

func TestPutRequiresPatient(t *testing.T) {
	svc := NewService(store.NewMemory())

	_, err := svc.Put(999, PutRequest{Allergies: "dust"})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "patient", notFound.Entity)
}

func TestPutFieldLimits(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	patient := seedPatient(t, mem)

	_, err := svc.Put(patient.ID, PutRequest{Allergies: strings.Repeat("a", 501)})
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Put(patient.ID, PutRequest{Background: strings.Repeat("b", 1001)})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Put(patient.ID, PutRequest{Observations: strings.Repeat("c", 1001)})
	assert.ErrorAs(t, err, &validationErr)
}

func TestGetAbsentHistory(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)
	patient := seedPatient(t, mem)

	record, err := svc.Get(patient.ID)
	require.NoError(t, err)
	assert.Nil(t, record)
}

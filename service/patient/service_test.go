package patient

import (
	"testing"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() RegisterRequest {
	return RegisterRequest{
		FullName:    "Ama Owusu",
		NationalID:  "GHA-1990-001",
		DateOfBirth: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Phone:       "0244123456",
		Email:       "ama.owusu@example.com",
	}
}

func TestRegisterPatient(t *testing.T) {
	svc := NewService(store.NewMemory())

	p, err := svc.Register(validRequest())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	found, err := svc.GetByNationalID("GHA-1990-001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p.ID, found.ID)
}

func TestRegisterDuplicateNationalID(t *testing.T) {
	svc := NewService(store.NewMemory())

	req := validRequest()
	req.NationalID = "123"
	_, err := svc.Register(req)
	require.NoError(t, err)

	second := validRequest()
	second.NationalID = "123"
	second.Email = "other@example.com"
	_, err = svc.Register(second)

	var duplicateErr *models.DuplicateKeyError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "123", duplicateErr.Key)
	assert.Equal(t, "patient", duplicateErr.Entity)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(store.NewMemory())

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing name", func(r *RegisterRequest) { r.FullName = "" }},
		{"missing national id", func(r *RegisterRequest) { r.NationalID = "" }},
		{"future birth date", func(r *RegisterRequest) { r.DateOfBirth = time.Now().Add(24 * time.Hour) }},
		{"missing birth date", func(r *RegisterRequest) { r.DateOfBirth = time.Time{} }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }},
		{"phone too long", func(r *RegisterRequest) { r.Phone = "0123456789012345" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Register(req)
			var validationErr *models.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdatePatient(t *testing.T) {
	svc := NewService(store.NewMemory())

	p, err := svc.Register(validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.FullName = "Ama Owusu-Ansah"
	updated, err := svc.Update(p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Ama Owusu-Ansah", updated.FullName)

	_, err = svc.Update(999, req)
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateCannotStealNationalID(t *testing.T) {
	svc := NewService(store.NewMemory())

	_, err := svc.Register(validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.NationalID = "GHA-1991-002"
	second.Email = "second@example.com"
	p2, err := svc.Register(second)
	require.NoError(t, err)

	second.NationalID = "GHA-1990-001"
	_, err = svc.Update(p2.ID, second)
	var duplicateErr *models.DuplicateKeyError
	assert.ErrorAs(t, err, &duplicateErr)
}

func TestDeletePatientCascades(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)

	p, err := svc.Register(validRequest())
	require.NoError(t, err)

	doctor := &models.Doctor{
		FullName:      "Dr. Kwame Mensah",
		LicenseNumber: "MED-4411",
		Specialty:     models.SpecialtyCardiology,
		Email:         "k.mensah@hospital.example.com",
	}
	require.NoError(t, mem.CreateDoctor(doctor))

	appt := &models.Appointment{
		Reference: "ref-1",
		DateTime:  time.Now().Add(24 * time.Hour),
		Status:    models.StatusScheduled,
		PatientID: p.ID,
		DoctorID:  doctor.ID,
	}
	require.NoError(t, mem.CreateAppointment(appt))
	require.NoError(t, mem.SaveHistory(&models.MedicalHistory{
		PatientID: p.ID,
		Allergies: "penicillin",
	}))

	deleted, err := svc.Delete(p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := mem.PatientByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	h, err := mem.HistoryByPatient(p.ID)
	require.NoError(t, err)
	assert.Nil(t, h)

	appointments, err := mem.AppointmentsByPatient(p.ID)
	require.NoError(t, err)
	assert.Empty(t, appointments)

	// The referenced doctor is never touched by the cascade.
	d, err := mem.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestDeleteMissingPatientReturnsFalse(t *testing.T) {
	svc := NewService(store.NewMemory())

	deleted, err := svc.Delete(42)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListPatients(t *testing.T) {
	svc := NewService(store.NewMemory())

	first := validRequest()
	_, err := svc.Register(first)
	require.NoError(t, err)

	second := validRequest()
	second.FullName = "Kofi Boateng"
	second.NationalID = "GHA-1985-002"
	second.Email = "kofi.boateng@example.com"
	_, err = svc.Register(second)
	require.NoError(t, err)

	patients, total, err := svc.List(0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, patients, 2)
}

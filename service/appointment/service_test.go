package appointment

import (
	"testing"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *store.Memory, *models.Patient, *models.Doctor) {
	t.Helper()
	mem := store.NewMemory()

	patient := &models.Patient{
		FullName:    "Ama Owusu",
		NationalID:  "GHA-1990-001",
		DateOfBirth: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Email:       "ama.owusu@example.com",
	}
	require.NoError(t, mem.CreatePatient(patient))

	doctor := &models.Doctor{
		FullName:      "Dr. Kwame Mensah",
		LicenseNumber: "MED-4411",
		Specialty:     models.SpecialtyCardiology,
		Email:         "k.mensah@hospital.example.com",
	}
	require.NoError(t, mem.CreateDoctor(doctor))

	return NewService(mem, nil), mem, patient, doctor
}

func TestScheduleCreatesScheduledAppointment(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)
	at := time.Now().Add(7 * 24 * time.Hour)

	appt, err := svc.Schedule(patient.ID, doctor.ID, at, "Annual check-up")
	require.NoError(t, err)

	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, patient.ID, appt.PatientID)
	assert.Equal(t, doctor.ID, appt.DoctorID)
	assert.NotEmpty(t, appt.Reference)
	assert.True(t, appt.DateTime.Equal(at))
}

func TestScheduleSameSlotConflicts(t *testing.T) {
	svc, mem, patient, doctor := newTestService(t)
	at := time.Now().Add(7 * 24 * time.Hour)

	_, err := svc.Schedule(patient.ID, doctor.ID, at, "")
	require.NoError(t, err)

	other := &models.Patient{
		FullName:    "Kofi Boateng",
		NationalID:  "GHA-1985-002",
		DateOfBirth: time.Date(1985, 1, 20, 0, 0, 0, 0, time.UTC),
		Email:       "kofi.boateng@example.com",
	}
	require.NoError(t, mem.CreatePatient(other))

	_, err = svc.Schedule(other.ID, doctor.ID, at, "")
	var slotErr *models.SlotConflictError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, doctor.ID, slotErr.DoctorID)
	assert.True(t, slotErr.At.Equal(at))
}

func TestSchedulePastDateRejected(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)

	_, err := svc.Schedule(patient.ID, doctor.ID, time.Now().Add(-24*time.Hour), "")
	var dateErr *models.InvalidDateError
	assert.ErrorAs(t, err, &dateErr)
}

func TestScheduleUnknownReferents(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)
	at := time.Now().Add(48 * time.Hour)

	_, err := svc.Schedule(999, doctor.ID, at, "")
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "patient", notFound.Entity)

	_, err = svc.Schedule(patient.ID, 999, at, "")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "doctor", notFound.Entity)
}

func TestScheduleReasonTooLong(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)

	reason := make([]byte, 201)
	for i := range reason {
		reason[i] = 'x'
	}
	_, err := svc.Schedule(patient.ID, doctor.ID, time.Now().Add(time.Hour), string(reason))
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCanScheduleFreesSlotOnTerminalStatus(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)
	at := time.Now().Add(7 * 24 * time.Hour)

	appt, err := svc.Schedule(patient.ID, doctor.ID, at, "")
	require.NoError(t, err)

	free, err := svc.CanSchedule(doctor.ID, at, 0)
	require.NoError(t, err)
	assert.False(t, free, "slot must be occupied while SCHEDULED")

	_, err = svc.ChangeStatus(appt.ID, models.StatusAttended)
	require.NoError(t, err)

	free, err = svc.CanSchedule(doctor.ID, at, 0)
	require.NoError(t, err)
	assert.True(t, free, "ATTENDED appointment no longer occupies the slot")
}

func TestCanScheduleExcludesSelf(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)
	at := time.Now().Add(7 * 24 * time.Hour)

	appt, err := svc.Schedule(patient.ID, doctor.ID, at, "")
	require.NoError(t, err)

	free, err := svc.CanSchedule(doctor.ID, at, appt.ID)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestChangeStatusLifecycle(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)

	appt, err := svc.Schedule(patient.ID, doctor.ID, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(appt.ID, models.StatusAttended)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAttended, updated.Status)

	_, err = svc.ChangeStatus(appt.ID, models.StatusCancelled)
	var transitionErr *models.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.StatusAttended, transitionErr.From)
	assert.Equal(t, models.StatusCancelled, transitionErr.To)
}

func TestChangeStatusEmptyTarget(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)

	appt, err := svc.Schedule(patient.ID, doctor.ID, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	_, err = svc.ChangeStatus(appt.ID, "")
	var argumentErr *models.InvalidArgumentError
	assert.ErrorAs(t, err, &argumentErr)

	_, err = svc.ChangeStatus(appt.ID, "POSTPONED")
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRescheduleChecksConflictsExcludingSelf(t *testing.T) {
	svc, mem, patient, doctor := newTestService(t)
	first := time.Now().Add(24 * time.Hour)
	second := time.Now().Add(48 * time.Hour)

	appt, err := svc.Schedule(patient.ID, doctor.ID, first, "")
	require.NoError(t, err)

	// Re-confirming its own slot is not a conflict.
	moved, err := svc.Reschedule(appt.ID, first)
	require.NoError(t, err)
	assert.True(t, moved.DateTime.Equal(first))

	other := &models.Patient{
		FullName:    "Efua Asante",
		NationalID:  "GHA-1992-003",
		DateOfBirth: time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC),
		Email:       "efua.asante@example.com",
	}
	require.NoError(t, mem.CreatePatient(other))
	_, err = svc.Schedule(other.ID, doctor.ID, second, "")
	require.NoError(t, err)

	_, err = svc.Reschedule(appt.ID, second)
	var slotErr *models.SlotConflictError
	assert.ErrorAs(t, err, &slotErr)
}

func TestRescheduleOnlyWhileScheduled(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)

	appt, err := svc.Schedule(patient.ID, doctor.ID, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	_, err = svc.ChangeStatus(appt.ID, models.StatusCancelled)
	require.NoError(t, err)

	_, err = svc.Reschedule(appt.ID, time.Now().Add(2*time.Hour))
	var transitionErr *models.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	svc, mem, patient, doctor := newTestService(t)
	at := time.Now().Add(72 * time.Hour)

	appt, err := svc.Schedule(patient.ID, doctor.ID, at, "")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(appt.ID, models.StatusCancelled)
	require.NoError(t, err)

	other := &models.Patient{
		FullName:    "Yaw Darko",
		NationalID:  "GHA-1988-004",
		DateOfBirth: time.Date(1988, 3, 9, 0, 0, 0, 0, time.UTC),
		Email:       "yaw.darko@example.com",
	}
	require.NoError(t, mem.CreatePatient(other))

	_, err = svc.Schedule(other.ID, doctor.ID, at, "")
	assert.NoError(t, err)
}

func TestDeleteAppointmentLeavesReferentsAlone(t *testing.T) {
	svc, mem, patient, doctor := newTestService(t)

	appt, err := svc.Schedule(patient.ID, doctor.ID, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	deleted, err := svc.Delete(appt.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := svc.Get(appt.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	p, err := mem.PatientByID(patient.ID)
	require.NoError(t, err)
	assert.NotNil(t, p)
	d, err := mem.DoctorByID(doctor.ID)
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestDeleteMissingAppointmentReturnsFalse(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	deleted, err := svc.Delete(12345)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestQueries(t *testing.T) {
	svc, _, patient, doctor := newTestService(t)
	base := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	first, err := svc.Schedule(patient.ID, doctor.ID, base, "")
	require.NoError(t, err)
	second, err := svc.Schedule(patient.ID, doctor.ID, base.Add(time.Hour), "")
	require.NoError(t, err)
	_, err = svc.ChangeStatus(second.ID, models.StatusCancelled)
	require.NoError(t, err)

	byPatient, err := svc.ListByPatient(patient.ID)
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)

	upcoming, err := svc.UpcomingByDoctor(doctor.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, first.ID, upcoming[0].ID)

	inRange, err := svc.ListInRange(base.Add(-time.Minute), base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, first.ID, inRange[0].ID)

	cancelled, err := svc.ListByStatus(models.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, second.ID, cancelled[0].ID)
}

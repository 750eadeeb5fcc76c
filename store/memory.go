package store

import (
	"sort"
	"sync"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
)

// Memory is an in-process Store with the same semantics as the Postgres one:
// unique natural keys, the SCHEDULED slot invariant, and all-or-nothing
// transactions. It backs the test suite and needs no running database.
type Memory struct {
	mu sync.Mutex
	ds *dataset
}

type dataset struct {
	patients     map[uint]models.Patient
	doctors      map[uint]models.Doctor
	histories    map[uint]models.MedicalHistory
	appointments map[uint]models.Appointment

	nextPatientID     uint
	nextDoctorID      uint
	nextAppointmentID uint
}

func NewMemory() *Memory {
	return &Memory{ds: &dataset{
		patients:     map[uint]models.Patient{},
		doctors:      map[uint]models.Doctor{},
		histories:    map[uint]models.MedicalHistory{},
		appointments: map[uint]models.Appointment{},
	}}
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		patients:          make(map[uint]models.Patient, len(d.patients)),
		doctors:           make(map[uint]models.Doctor, len(d.doctors)),
		histories:         make(map[uint]models.MedicalHistory, len(d.histories)),
		appointments:      make(map[uint]models.Appointment, len(d.appointments)),
		nextPatientID:     d.nextPatientID,
		nextDoctorID:      d.nextDoctorID,
		nextAppointmentID: d.nextAppointmentID,
	}
	for id, p := range d.patients {
		out.patients[id] = p
	}
	for id, doc := range d.doctors {
		out.doctors[id] = doc
	}
	for id, h := range d.histories {
		out.histories[id] = h
	}
	for id, a := range d.appointments {
		out.appointments[id] = a
	}
	return out
}

// Atomically runs fn against a copy of the dataset and swaps the copy in only
// when fn succeeds, so a failure rolls every write back.
func (m *Memory) Atomically(fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := m.ds.clone()
	if err := fn(&memView{ds: clone}); err != nil {
		return err
	}
	m.ds = clone
	return nil
}

func (m *Memory) view() *memView {
	return &memView{ds: m.ds}
}

func (m *Memory) CreatePatient(p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().CreatePatient(p)
}

func (m *Memory) SavePatient(p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().SavePatient(p)
}

func (m *Memory) PatientByID(id uint) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().PatientByID(id)
}

func (m *Memory) PatientByNationalID(nationalID string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().PatientByNationalID(nationalID)
}

func (m *Memory) Patients(offset, limit int) ([]models.Patient, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Patients(offset, limit)
}

func (m *Memory) DeletePatient(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DeletePatient(id)
}

func (m *Memory) CreateDoctor(d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().CreateDoctor(d)
}

func (m *Memory) SaveDoctor(d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().SaveDoctor(d)
}

func (m *Memory) DoctorByID(id uint) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DoctorByID(id)
}

func (m *Memory) DoctorByLicense(license string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DoctorByLicense(license)
}

func (m *Memory) Doctors(offset, limit int) ([]models.Doctor, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Doctors(offset, limit)
}

func (m *Memory) DoctorsBySpecialty(specialty models.Specialty) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DoctorsBySpecialty(specialty)
}

func (m *Memory) DeleteDoctor(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DeleteDoctor(id)
}

func (m *Memory) HistoryByPatient(patientID uint) (*models.MedicalHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().HistoryByPatient(patientID)
}

func (m *Memory) SaveHistory(h *models.MedicalHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().SaveHistory(h)
}

func (m *Memory) DeleteHistoryByPatient(patientID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DeleteHistoryByPatient(patientID)
}

func (m *Memory) CreateAppointment(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().CreateAppointment(a)
}

func (m *Memory) SaveAppointment(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().SaveAppointment(a)
}

func (m *Memory) AppointmentByID(id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().AppointmentByID(id)
}

func (m *Memory) DeleteAppointment(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DeleteAppointment(id)
}

func (m *Memory) DeleteAppointmentsByPatient(patientID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DeleteAppointmentsByPatient(patientID)
}

func (m *Memory) DeleteAppointmentsByDoctor(doctorID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().DeleteAppointmentsByDoctor(doctorID)
}

func (m *Memory) CountAppointmentsByDoctor(doctorID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().CountAppointmentsByDoctor(doctorID)
}

func (m *Memory) HasScheduledAt(doctorID uint, at time.Time, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().HasScheduledAt(doctorID, at, excludeID)
}

func (m *Memory) Appointments(offset, limit int) ([]models.Appointment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Appointments(offset, limit)
}

func (m *Memory) AppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().AppointmentsByPatient(patientID)
}

func (m *Memory) UpcomingByDoctor(doctorID uint, from time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().UpcomingByDoctor(doctorID, from)
}

func (m *Memory) AppointmentsInRange(from, to time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().AppointmentsInRange(from, to)
}

func (m *Memory) AppointmentsByStatus(status models.AppointmentStatus) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().AppointmentsByStatus(status)
}

// memView operates directly on a dataset. It is what transactions and the
// locked Memory methods run against.
type memView struct {
	ds *dataset
}

// Atomically on a view is already inside a transaction; gorm treats nested
// transactions the same way.
func (v *memView) Atomically(fn func(Store) error) error {
	return fn(v)
}

func (v *memView) CreatePatient(p *models.Patient) error {
	for _, existing := range v.ds.patients {
		if existing.NationalID == p.NationalID {
			return ErrDuplicateKey
		}
	}
	v.ds.nextPatientID++
	p.ID = v.ds.nextPatientID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	v.ds.patients[p.ID] = *p
	return nil
}

func (v *memView) SavePatient(p *models.Patient) error {
	for id, existing := range v.ds.patients {
		if id != p.ID && existing.NationalID == p.NationalID {
			return ErrDuplicateKey
		}
	}
	p.UpdatedAt = time.Now()
	v.ds.patients[p.ID] = *p
	return nil
}

func (v *memView) PatientByID(id uint) (*models.Patient, error) {
	if p, ok := v.ds.patients[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (v *memView) PatientByNationalID(nationalID string) (*models.Patient, error) {
	for _, p := range v.ds.patients {
		if p.NationalID == nationalID {
			return &p, nil
		}
	}
	return nil, nil
}

func (v *memView) Patients(offset, limit int) ([]models.Patient, int64, error) {
	all := make([]models.Patient, 0, len(v.ds.patients))
	for _, p := range v.ds.patients {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })
	return page(all, offset, limit), int64(len(all)), nil
}

func (v *memView) DeletePatient(id uint) (bool, error) {
	if _, ok := v.ds.patients[id]; !ok {
		return false, nil
	}
	delete(v.ds.patients, id)
	return true, nil
}

func (v *memView) CreateDoctor(d *models.Doctor) error {
	for _, existing := range v.ds.doctors {
		if existing.LicenseNumber == d.LicenseNumber {
			return ErrDuplicateKey
		}
	}
	v.ds.nextDoctorID++
	d.ID = v.ds.nextDoctorID
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	v.ds.doctors[d.ID] = *d
	return nil
}

func (v *memView) SaveDoctor(d *models.Doctor) error {
	for id, existing := range v.ds.doctors {
		if id != d.ID && existing.LicenseNumber == d.LicenseNumber {
			return ErrDuplicateKey
		}
	}
	d.UpdatedAt = time.Now()
	v.ds.doctors[d.ID] = *d
	return nil
}

func (v *memView) DoctorByID(id uint) (*models.Doctor, error) {
	if d, ok := v.ds.doctors[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (v *memView) DoctorByLicense(license string) (*models.Doctor, error) {
	for _, d := range v.ds.doctors {
		if d.LicenseNumber == license {
			return &d, nil
		}
	}
	return nil, nil
}

func (v *memView) Doctors(offset, limit int) ([]models.Doctor, int64, error) {
	all := make([]models.Doctor, 0, len(v.ds.doctors))
	for _, d := range v.ds.doctors {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })
	return page(all, offset, limit), int64(len(all)), nil
}

func (v *memView) DoctorsBySpecialty(specialty models.Specialty) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range v.ds.doctors {
		if d.Specialty == specialty {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (v *memView) DeleteDoctor(id uint) (bool, error) {
	if _, ok := v.ds.doctors[id]; !ok {
		return false, nil
	}
	delete(v.ds.doctors, id)
	return true, nil
}

func (v *memView) HistoryByPatient(patientID uint) (*models.MedicalHistory, error) {
	if h, ok := v.ds.histories[patientID]; ok {
		return &h, nil
	}
	return nil, nil
}

func (v *memView) SaveHistory(h *models.MedicalHistory) error {
	now := time.Now()
	if existing, ok := v.ds.histories[h.PatientID]; ok {
		h.CreatedAt = existing.CreatedAt
	} else {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	v.ds.histories[h.PatientID] = *h
	return nil
}

func (v *memView) DeleteHistoryByPatient(patientID uint) error {
	delete(v.ds.histories, patientID)
	return nil
}

func (v *memView) CreateAppointment(a *models.Appointment) error {
	if a.Status == models.StatusScheduled {
		if taken, _ := v.HasScheduledAt(a.DoctorID, a.DateTime, 0); taken {
			return ErrDuplicateKey
		}
	}
	v.ds.nextAppointmentID++
	a.ID = v.ds.nextAppointmentID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	v.ds.appointments[a.ID] = *a
	return nil
}

func (v *memView) SaveAppointment(a *models.Appointment) error {
	if a.Status == models.StatusScheduled {
		if taken, _ := v.HasScheduledAt(a.DoctorID, a.DateTime, a.ID); taken {
			return ErrDuplicateKey
		}
	}
	a.UpdatedAt = time.Now()
	v.ds.appointments[a.ID] = *a
	return nil
}

func (v *memView) AppointmentByID(id uint) (*models.Appointment, error) {
	if a, ok := v.ds.appointments[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (v *memView) DeleteAppointment(id uint) (bool, error) {
	if _, ok := v.ds.appointments[id]; !ok {
		return false, nil
	}
	delete(v.ds.appointments, id)
	return true, nil
}

func (v *memView) DeleteAppointmentsByPatient(patientID uint) error {
	for id, a := range v.ds.appointments {
		if a.PatientID == patientID {
			delete(v.ds.appointments, id)
		}
	}
	return nil
}

func (v *memView) DeleteAppointmentsByDoctor(doctorID uint) error {
	for id, a := range v.ds.appointments {
		if a.DoctorID == doctorID {
			delete(v.ds.appointments, id)
		}
	}
	return nil
}

func (v *memView) CountAppointmentsByDoctor(doctorID uint) (int64, error) {
	var count int64
	for _, a := range v.ds.appointments {
		if a.DoctorID == doctorID {
			count++
		}
	}
	return count, nil
}

func (v *memView) HasScheduledAt(doctorID uint, at time.Time, excludeID uint) (bool, error) {
	for id, a := range v.ds.appointments {
		if id == excludeID {
			continue
		}
		if a.DoctorID == doctorID && a.Status == models.StatusScheduled && a.DateTime.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (v *memView) Appointments(offset, limit int) ([]models.Appointment, int64, error) {
	all := make([]models.Appointment, 0, len(v.ds.appointments))
	for _, a := range v.ds.appointments {
		all = append(all, a)
	}
	sortByTime(all)
	return page(all, offset, limit), int64(len(all)), nil
}

func (v *memView) AppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range v.ds.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sortByTime(out)
	return out, nil
}

func (v *memView) UpcomingByDoctor(doctorID uint, from time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range v.ds.appointments {
		if a.DoctorID == doctorID && a.Status == models.StatusScheduled && !a.DateTime.Before(from) {
			out = append(out, a)
		}
	}
	sortByTime(out)
	return out, nil
}

func (v *memView) AppointmentsInRange(from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range v.ds.appointments {
		if !a.DateTime.Before(from) && !a.DateTime.After(to) {
			out = append(out, a)
		}
	}
	sortByTime(out)
	return out, nil
}

func (v *memView) AppointmentsByStatus(status models.AppointmentStatus) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range v.ds.appointments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	sortByTime(out)
	return out, nil
}

func sortByTime(appointments []models.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].DateTime.Before(appointments[j].DateTime)
	})
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

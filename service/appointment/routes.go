package appointment

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/cmd/utils"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments", h.ScheduleAppointment).Methods("POST")
	router.HandleFunc("/appointments", h.GetAppointments).Methods("GET")
	router.HandleFunc("/appointments/{id}", h.GetAppointment).Methods("GET")
	router.HandleFunc("/appointments/{id}", h.DeleteAppointment).Methods("DELETE")
	router.HandleFunc("/appointments/{id}/reschedule", h.RescheduleAppointment).Methods("PATCH")
	router.HandleFunc("/appointments/{id}/status", h.ChangeStatus).Methods("PATCH")
	router.HandleFunc("/appointments/patient/{patientId}", h.GetPatientAppointments).Methods("GET")
	router.HandleFunc("/appointments/doctor/{doctorId}/upcoming", h.GetDoctorUpcoming).Methods("GET")
}

func (h *Handler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var scheduleRequest struct {
		PatientID uint      `json:"patient_id"`
		DoctorID  uint      `json:"doctor_id"`
		DateTime  time.Time `json:"datetime"`
		Reason    string    `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&scheduleRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Schedule(scheduleRequest.PatientID, scheduleRequest.DoctorID,
		scheduleRequest.DateTime, scheduleRequest.Reason)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, appt)
}

// GetAppointments lists appointments, optionally filtered by status or a
// from/to datetime range (RFC 3339).
func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if from, to := query.Get("from"), query.Get("to"); from != "" || to != "" {
		fromTime, err := time.Parse(time.RFC3339, from)
		if err != nil {
			http.Error(w, "Invalid from date", http.StatusBadRequest)
			return
		}
		toTime, err := time.Parse(time.RFC3339, to)
		if err != nil {
			http.Error(w, "Invalid to date", http.StatusBadRequest)
			return
		}
		appointments, err := h.service.ListInRange(fromTime, toTime)
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
		return
	}

	if status := query.Get("status"); status != "" {
		appointments, err := h.service.ListByStatus(models.AppointmentStatus(status))
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 100

	appointments, total, err := h.service.List((page-1)*pageSize, pageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
		"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Get(id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if appt == nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var rescheduleRequest struct {
		DateTime time.Time `json:"datetime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&rescheduleRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Reschedule(id, rescheduleRequest.DateTime)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var statusRequest struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.ChangeStatus(id, statusRequest.Status)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Appointment deleted successfully",
	})
}

func (h *Handler) GetPatientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseID(r, "patientId")
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	appointments, err := h.service.ListByPatient(patientID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

func (h *Handler) GetDoctorUpcoming(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parseID(r, "doctorId")
	if err != nil {
		http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
		return
	}

	appointments, err := h.service.UpcomingByDoctor(doctorID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

func parseID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 64)
	return uint(id), err
}

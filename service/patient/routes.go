package patient

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	router.HandleFunc("/patients", h.RegisterPatient).Methods("POST")
	router.HandleFunc("/patients", h.GetPatients).Methods("GET")
	router.HandleFunc("/patients/national-id/{nationalId}", h.GetPatientByNationalID).Methods("GET")
	router.HandleFunc("/patients/{id}", h.GetPatient).Methods("GET")
	router.HandleFunc("/patients/{id}", h.UpdatePatient).Methods("PUT")
	router.HandleFunc("/patients/{id}", h.DeletePatient).Methods("DELETE")
}

func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.service.Register(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetPatients(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 100

	patients, total, err := h.service.List((page-1)*pageSize, pageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"patients":    patients,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	p, err := h.service.Get(uint(id))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if p == nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) GetPatientByNationalID(w http.ResponseWriter, r *http.Request) {
	nationalID := mux.Vars(r)["nationalId"]

	p, err := h.service.GetByNationalID(nationalID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if p == nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.service.Update(uint(id), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.Delete(uint(id))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Patient and dependent records deleted successfully",
	})
}

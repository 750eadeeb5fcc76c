package doctor

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	router.HandleFunc("/doctors", h.RegisterDoctor).Methods("POST")
	router.HandleFunc("/doctors", h.GetDoctors).Methods("GET")
	router.HandleFunc("/doctors/license/{license}", h.GetDoctorByLicense).Methods("GET")
	router.HandleFunc("/doctors/specialty/{specialty}", h.GetDoctorsBySpecialty).Methods("GET")
	router.HandleFunc("/doctors/{id}", h.GetDoctor).Methods("GET")
	router.HandleFunc("/doctors/{id}", h.UpdateDoctor).Methods("PUT")
	router.HandleFunc("/doctors/{id}", h.DeleteDoctor).Methods("DELETE")
}

func (h *Handler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.service.Register(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 100

	doctors, total, err := h.service.List((page-1)*pageSize, pageSize)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"doctors":     doctors,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
		return
	}

	d, err := h.service.Get(uint(id))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if d == nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) GetDoctorByLicense(w http.ResponseWriter, r *http.Request) {
	license := mux.Vars(r)["license"]

	d, err := h.service.GetByLicense(license)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if d == nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) GetDoctorsBySpecialty(w http.ResponseWriter, r *http.Request) {
	specialty := models.Specialty(mux.Vars(r)["specialty"])
	if !specialty.IsValid() {
		http.Error(w, "Unknown specialty", http.StatusBadRequest)
		return
	}

	doctors, err := h.service.ListBySpecialty(specialty)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"doctors": doctors})
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.service.Update(uint(id), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid doctor ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.Delete(uint(id))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Doctor deleted successfully",
	})
}

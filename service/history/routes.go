package history

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
	router.HandleFunc("/patients/{patientId}/history", h.GetHistory).Methods("GET")
	router.HandleFunc("/patients/{patientId}/history", h.PutHistory).Methods("PUT")
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseUint(mux.Vars(r)["patientId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	record, err := h.service.Get(uint(patientID))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if record == nil {
		http.Error(w, "Medical history not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) PutHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseUint(mux.Vars(r)["patientId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	var req PutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.service.Put(uint(patientID), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, record)
}

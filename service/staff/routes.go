package staff

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/NtowKwame/hospital-server/cmd/models"
	"github.com/NtowKwame/hospital-server/cmd/utils"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler manages operator accounts for the administrative API. Staff data
// lives outside the records domain, so it talks to gorm directly the way the
// rest of the system talks to its store.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.HandleLogin).Methods("POST")
	router.HandleFunc("/staff", h.HandleCreateStaff).Methods("POST")
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var account models.StaffAccount
	if err := h.db.Where("email = ?", loginRequest.Email).First(&account).Error; err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(loginRequest.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateStaffToken(account.ID, account.Role, 12*time.Hour)
	if err != nil {
		http.Error(w, "Error generating access token", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"access_token": token,
		"staff_id":     account.ID,
		"role":         account.Role,
	})
}

func (h *Handler) HandleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var createRequest struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if createRequest.FullName == "" || createRequest.Email == "" || createRequest.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if createRequest.Role == "" {
		createRequest.Role = "admin"
	}

	var existing models.StaffAccount
	if result := h.db.Where("email = ?", createRequest.Email).First(&existing); !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if result.Error != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		http.Error(w, "Email is already in use", http.StatusConflict)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(createRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	account := models.StaffAccount{
		FullName:     createRequest.FullName,
		Email:        createRequest.Email,
		PasswordHash: string(passwordHash),
		Role:         createRequest.Role,
	}
	if err := h.db.Create(&account).Error; err != nil {
		http.Error(w, "Error creating staff account", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Staff account created successfully",
		"staff_id": account.ID,
	})
}

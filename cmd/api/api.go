package api

import (
	"log"
	"net/http"
	"os"

	"github.com/NtowKwame/hospital-server/cmd/utils"
	"github.com/NtowKwame/hospital-server/service/appointment"
	"github.com/NtowKwame/hospital-server/service/doctor"
	"github.com/NtowKwame/hospital-server/service/history"
	"github.com/NtowKwame/hospital-server/service/notify"
	"github.com/NtowKwame/hospital-server/service/patient"
	"github.com/NtowKwame/hospital-server/service/staff"
	"github.com/NtowKwame/hospital-server/store"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	st := store.NewGormStore(s.db)
	mailer := notify.NewMailerFromEnv()

	staffHandler := staff.NewHandler(s.db)
	staffHandler.RegisterRoutes(subrouter)

	// Everything past login requires a staff token.
	protected := subrouter.NewRoute().Subrouter()
	protected.Use(utils.AuthMiddleware)

	patientHandler := patient.NewHandler(patient.NewService(st))
	patientHandler.RegisterRoutes(protected)

	doctorHandler := doctor.NewHandler(doctor.NewService(st, doctor.PolicyFromEnv()))
	doctorHandler.RegisterRoutes(protected)

	historyHandler := history.NewHandler(history.NewService(st))
	historyHandler.RegisterRoutes(protected)

	appointmentHandler := appointment.NewHandler(appointment.NewService(st, mailer))
	appointmentHandler.RegisterRoutes(protected)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.LoggingHandler(os.Stdout, cors(router)))
}

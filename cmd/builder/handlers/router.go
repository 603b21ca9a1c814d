package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/session"
)

// RouterConfig holds what the API routes need.
type RouterConfig struct {
	Sessions     *session.Manager
	CertLoader   *certs.Loader
	CertMonitor  *certs.Monitor
	CookieName   string
	CookieSecret string
	CookieSecure bool
	Logger       logger.Logger
	Version      string
}

// NewRouter builds the HTTP routes.
func NewRouter(cfg RouterConfig) *mux.Router {
	log := cfg.Logger
	router := mux.NewRouter()

	// Health check endpoint (public)
	router.HandleFunc("/health", HealthHandler(cfg.Version)).Methods(http.MethodGet)

	sessionMiddleware := NewSessionMiddleware(cfg.Sessions, cfg.CookieSecret, cfg.CookieName, cfg.CookieSecure, log)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(sessionMiddleware.Handler)

	scenarioHandler := NewScenarioHandler(log)
	api.HandleFunc("/scenario", scenarioHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/scenario/agent-config", scenarioHandler.UpdateAgentConfig).Methods(http.MethodPut)
	api.HandleFunc("/scenario/reset", scenarioHandler.Reset).Methods(http.MethodPost)

	stepHandler := NewStepHandler(log)
	api.HandleFunc("/steps", stepHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/steps", stepHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/steps/move", stepHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/steps/toggle-all", stepHandler.ToggleAll).Methods(http.MethodPost)
	api.HandleFunc("/steps/{index:[0-9]+}", stepHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/steps/{id}", stepHandler.SetActionType).Methods(http.MethodPut)
	api.HandleFunc("/steps/{id}/toggle", stepHandler.Toggle).Methods(http.MethodPost)
	api.HandleFunc("/steps/{id}/parameters", stepHandler.AddParameter).Methods(http.MethodPost)
	api.HandleFunc("/steps/{id}/parameters/{fieldId}", stepHandler.UpdateParameter).Methods(http.MethodPut)
	api.HandleFunc("/steps/{id}/parameters/{fieldId}", stepHandler.RemoveParameter).Methods(http.MethodDelete)
	api.HandleFunc("/steps/{id}/expected-results", stepHandler.AddExpectedResult).Methods(http.MethodPost)
	api.HandleFunc("/steps/{id}/expected-results/{fieldId}", stepHandler.UpdateExpectedResult).Methods(http.MethodPut)
	api.HandleFunc("/steps/{id}/expected-results/{fieldId}", stepHandler.RemoveExpectedResult).Methods(http.MethodDelete)

	draftHandler := NewDraftHandler(log)
	api.HandleFunc("/drafts", draftHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/drafts", draftHandler.Save).Methods(http.MethodPost)
	api.HandleFunc("/drafts/load", draftHandler.Load).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{key:.+}", draftHandler.Delete).Methods(http.MethodDelete)

	transferHandler := NewTransferHandler(log)
	api.HandleFunc("/import", transferHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/export", transferHandler.Export).Methods(http.MethodGet)

	submitHandler := NewSubmitHandler(log)
	api.HandleFunc("/submit", submitHandler.Submit).Methods(http.MethodPost)

	certHandler := NewCertificateHandler(cfg.CertLoader, cfg.CertMonitor)
	api.HandleFunc("/certificates", certHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/certificates/check", certHandler.Check).Methods(http.MethodPost)

	api.HandleFunc("/catalog", CatalogHandler).Methods(http.MethodGet)

	return router
}

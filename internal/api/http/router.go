package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"creditdesk-backend/internal/service"
)

func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// Services bundles everything the router exposes.
type Services struct {
	Clients     service.ClientService
	Credits     service.CreditService
	Settlements service.SettlementService
	Cheques     service.ChequeService
	Reminders   service.ReminderService
	Alerts      service.AlertService
	Audit       service.AuditService
	Dashboard   service.DashboardService
}

// NewRouter wires all API routes under /api/v1.
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	clients := NewClientHandler(svcs.Clients)
	api.HandleFunc("/clients", clients.Create).Methods("POST")
	api.HandleFunc("/clients", clients.List).Methods("GET")
	api.HandleFunc("/clients/{id}", clients.Get).Methods("GET")
	api.HandleFunc("/clients/{id}", clients.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clients.Delete).Methods("DELETE")

	credits := NewCreditHandler(svcs.Credits)
	api.HandleFunc("/credits/single", credits.CreateSingle).Methods("POST")
	api.HandleFunc("/credits/split", credits.CreateSplit).Methods("POST")
	api.HandleFunc("/credits", credits.List).Methods("GET")
	api.HandleFunc("/credits/{id}", credits.Get).Methods("GET")
	api.HandleFunc("/credits/{id}", credits.Update).Methods("PUT")
	api.HandleFunc("/credits/{id}", credits.Delete).Methods("DELETE")
	api.HandleFunc("/credits/{id}/plan", credits.CreatePlan).Methods("POST")

	settlements := NewSettlementHandler(svcs.Settlements)
	api.HandleFunc("/credits/{id}/settlements", settlements.ListByCredit).Methods("GET")
	api.HandleFunc("/settlements", settlements.Create).Methods("POST")
	api.HandleFunc("/settlements/{id}", settlements.Update).Methods("PUT")
	api.HandleFunc("/settlements/{id}", settlements.Delete).Methods("DELETE")
	api.HandleFunc("/settlements/{id}/clear", settlements.Clear).Methods("POST")

	cheques := NewChequeHandler(svcs.Cheques)
	api.HandleFunc("/credits/{id}/cheques", cheques.ListByCredit).Methods("GET")
	api.HandleFunc("/cheques", cheques.Create).Methods("POST")
	api.HandleFunc("/cheques/{id}", cheques.Get).Methods("GET")
	api.HandleFunc("/cheques/{id}", cheques.Update).Methods("PUT")
	api.HandleFunc("/cheques/{id}", cheques.Delete).Methods("DELETE")
	api.HandleFunc("/cheques/{id}/pay-cash", cheques.PayInCash).Methods("POST")
	api.HandleFunc("/drafts/{id}/collect", cheques.MarkDraftToCollect).Methods("POST")
	api.HandleFunc("/drafts/{id}/defer", cheques.DeferDraft).Methods("POST")
	api.HandleFunc("/drafts/{id}/contact", cheques.RequestClientContact).Methods("POST")

	reminders := NewReminderHandler(svcs.Reminders)
	api.HandleFunc("/reminders", reminders.List).Methods("GET")

	alerts := NewAlertHandler(svcs.Alerts)
	api.HandleFunc("/alerts", alerts.List).Methods("GET")
	api.HandleFunc("/alerts/{id}/handle", alerts.Handle).Methods("POST")
	api.HandleFunc("/alerts/{id}/defer", alerts.Defer).Methods("POST")

	audit := NewAuditHandler(svcs.Audit)
	api.HandleFunc("/audit", audit.List).Methods("GET")
	api.HandleFunc("/audit/stats", audit.Stats).Methods("GET")

	dashboard := NewDashboardHandler(svcs.Dashboard)
	api.HandleFunc("/dashboard", dashboard.Stats).Methods("GET")
	api.HandleFunc("/dashboard/quick", dashboard.QuickStats).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return router
}

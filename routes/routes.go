package routes

import (
	"net/http"

	"beneficiarydesk/auth"
	"beneficiarydesk/handlers"
	"beneficiarydesk/models"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/google/uuid"
)

// withRequestID tags every request with an id so panic logs and responses can
// be correlated.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
	})
}

// SetupRoutes builds the /api router. Every route except login and health
// goes through the authenticator; role-scoped routes add a RequireRoles gate
// on top.
func SetupRoutes(
	authenticator *auth.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	beneficiaryHandler *handlers.BeneficiaryHandler,
	statsHandler *handlers.StatsHandler,
	slipHandler *handlers.SlipHandler,
) http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	adminOnly := auth.RequireRoles(models.RoleAdmin)
	reception := auth.RequireRoles(models.RoleAdmin, models.RoleReceptionist)
	processing := auth.RequireRoles(models.RoleAdmin, models.RoleStaff)

	authed := func(gate func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
		return authenticator.Middleware(gate(h))
	}

	// Public routes
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Server running"}`))
	}).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Auth routes
	api.Handle("/auth/signup", authed(adminOnly, authHandler.Signup)).Methods(http.MethodPost)

	// User management (admin)
	api.Handle("/users", authed(adminOnly, userHandler.ListUsers)).Methods(http.MethodGet)
	api.Handle("/users", authed(adminOnly, userHandler.CreateUser)).Methods(http.MethodPost)
	api.Handle("/users/{id}", authed(adminOnly, userHandler.UpdateUser)).Methods(http.MethodPut)
	api.Handle("/users/{id}", authed(adminOnly, userHandler.DeleteUser)).Methods(http.MethodDelete)

	// Beneficiary ledger
	api.Handle("/beneficiaries", authed(reception, beneficiaryHandler.Create)).Methods(http.MethodPost)
	api.Handle("/beneficiaries", authenticator.Middleware(http.HandlerFunc(beneficiaryHandler.List))).Methods(http.MethodGet)
	api.Handle("/beneficiaries/{id}", authed(processing, beneficiaryHandler.Update)).Methods(http.MethodPut)
	api.Handle("/beneficiaries/{id}/slip", authed(reception, slipHandler.TokenSlip)).Methods(http.MethodGet)

	// Stats (admin)
	api.Handle("/stats", authed(adminOnly, statsHandler.Dashboard)).Methods(http.MethodGet)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.AllowedOrigins([]string{"*"}), // Replace * with your domain in production
	)

	return cors(withRequestID(handlers.RecoverWrapper(router)))
}

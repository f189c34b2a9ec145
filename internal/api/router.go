package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/denizak/lootledger/internal/auth"
	"github.com/denizak/lootledger/internal/middleware"
	"github.com/denizak/lootledger/internal/storage"
)

// NewRouter creates the API router with all endpoints registered and the
// identity, logging and metrics middleware applied.
//
// Reads (group listing and detail, players, earnings, paid amounts,
// reports, receivables) are public; every mutation requires an admin
// session.
func NewRouter(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Authenticator: authenticator, JWT: jwtManager}
	groupsHandler := &GroupsHandler{Store: store}
	playersHandler := &PlayersHandler{Store: store}
	itemsHandler := &ItemsHandler{Store: store}
	reportsHandler := &ReportsHandler{Store: store}

	admin := middleware.RequireAdmin(respondError)

	// Sessions.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/session", authHandler.Session)

	// Groups: read public, write admin.
	mux.HandleFunc("GET /api/groups", groupsHandler.List)
	mux.Handle("POST /api/groups", admin(http.HandlerFunc(groupsHandler.Create)))
	mux.HandleFunc("GET /api/groups/{id}", groupsHandler.Get)
	mux.Handle("DELETE /api/groups/{id}", admin(http.HandlerFunc(groupsHandler.Delete)))
	mux.HandleFunc("GET /api/groups/{id}/earnings", groupsHandler.Earnings)
	mux.HandleFunc("GET /api/groups/{id}/paid", groupsHandler.PaidAmounts)
	mux.Handle("PUT /api/groups/{id}/paid/{playerID}", admin(http.HandlerFunc(groupsHandler.UpdatePaidAmount)))

	// Players.
	mux.HandleFunc("GET /api/players", playersHandler.List)
	mux.Handle("POST /api/players", admin(http.HandlerFunc(playersHandler.Create)))
	mux.Handle("DELETE /api/players/{id}", admin(http.HandlerFunc(playersHandler.Delete)))

	// Items (admin only; reads come through the group detail).
	mux.Handle("POST /api/items", admin(http.HandlerFunc(itemsHandler.Save)))
	mux.Handle("DELETE /api/items/{id}", admin(http.HandlerFunc(itemsHandler.Delete)))

	// Reports.
	mux.HandleFunc("GET /api/report", reportsHandler.Report)
	mux.HandleFunc("GET /api/receivables", reportsHandler.Receivables)

	// Observability.
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.WithIdentity(jwtManager)(middleware.Logging(middleware.Metrics(mux)))
}

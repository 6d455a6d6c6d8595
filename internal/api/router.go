package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/najdeno/internal/claims"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	claimsHandler := &ClaimsHandler{Service: &claims.Service{DB: db}}

	authMW := AuthMiddleware(jwtSecret, db)

	// Identity.
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("POST /auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Items: the feed and item details are public, posting is not.
	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.Handle("POST /items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /items/user/my", authMW(http.HandlerFunc(itemsHandler.ListMine)))
	mux.HandleFunc("GET /items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /items/{id}/photo", itemsHandler.GetPhoto)

	// Claims.
	mux.Handle("POST /items/{id}/claims", authMW(http.HandlerFunc(claimsHandler.Submit)))
	mux.Handle("GET /items/{id}/claims", authMW(http.HandlerFunc(claimsHandler.List)))
	mux.Handle("PATCH /items/claims/{claimId}", authMW(http.HandlerFunc(claimsHandler.Decide)))

	return mux
}

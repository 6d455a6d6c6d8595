package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/najdeno/internal/claims"
)

// ClaimsHandler handles claim submission and moderation endpoints.
type ClaimsHandler struct {
	Service *claims.Service
}

type submitClaimRequest struct {
	Answer string `json:"answer"`
	Phone  string `json:"phone"`
}

type decideClaimRequest struct {
	Action string `json:"action"`
}

// Submit handles POST /items/{id}/claims. The claimant identity comes from
// the bearer token, not the request body; only a contact phone override is
// accepted from the client.
func (h *ClaimsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req submitClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := GetClaims(r.Context()).Identity()
	if req.Phone != "" {
		identity.Phone = req.Phone
	}

	claim, err := h.Service.Submit(r.Context(), itemID, identity, req.Answer)
	if err != nil {
		respondClaimsError(w, err)
		return
	}

	slog.Info("claim submitted", "claimant", identity.Email, "item", itemID, "claim", claim.ID)
	jsonData(w, http.StatusCreated, claim)
}

// List handles GET /items/{id}/claims (owner only).
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	list, err := h.Service.List(r.Context(), itemID, GetClaims(r.Context()).Identity())
	if err != nil {
		respondClaimsError(w, err)
		return
	}

	jsonData(w, http.StatusOK, list)
}

// Decide handles PATCH /items/claims/{claimId} (owner only).
func (h *ClaimsHandler) Decide(w http.ResponseWriter, r *http.Request) {
	claimID, err := strconv.ParseInt(r.PathValue("claimId"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var req decideClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := GetClaims(r.Context()).Identity()
	claim, err := h.Service.Decide(r.Context(), claimID, req.Action, identity)
	if err != nil {
		respondClaimsError(w, err)
		return
	}

	slog.Info("claim decided", "owner", identity.Email, "claim", claim.ID, "status", claim.Status)
	jsonData(w, http.StatusOK, claim)
}

// respondClaimsError maps claims service errors to HTTP statuses.
func respondClaimsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, claims.ErrEmptyAnswer), errors.Is(err, claims.ErrInvalidDecision):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, claims.ErrUnauthenticated):
		jsonError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, claims.ErrNotOwner):
		jsonError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, claims.ErrItemNotFound), errors.Is(err, claims.ErrClaimNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, claims.ErrAlreadyDecided):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("claims operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "temporary backend failure, please retry")
	}
}

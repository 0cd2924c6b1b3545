// Package handler exposes the identity gate over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	codeModel "trustvault/internal/accesscode/models"
	identityModel "trustvault/internal/identity/models"
	vaultModel "trustvault/internal/vault/models"
	"trustvault/pkg/platform/httputil"
	"trustvault/pkg/requestcontext"
)

// Service defines the gate operations the handler dispatches to.
type Service interface {
	Register(ctx context.Context, req *identityModel.RegisterRequest) (*identityModel.Identity, error)
	Login(ctx context.Context, req *identityModel.LoginRequest) (*codeModel.AccessCode, error)
	RemainingSeconds(ctx context.Context) (int, error)
	EnterVault(ctx context.Context, presented string) (*vaultModel.Snapshot, error)
	DeleteIdentity(ctx context.Context) error
}

// Handler wires gate endpoints to the gate service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a gate handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts gate endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/identity/register", h.HandleRegister)
	r.Delete("/identity", h.HandleDeleteIdentity)
	r.Post("/auth/login", h.HandleLogin)
	r.Get("/auth/code", h.HandleCodeStatus)
	r.Post("/vault", h.HandleEnterVault)
}

// HandleRegister handles POST /identity/register requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[identityModel.RegisterRequest](w, r)
	if !ok {
		return
	}

	identity, err := h.service.Register(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "registration refused",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "identity registered",
		"request_id", requestID,
		"identity_id", identity.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, fromIdentity(identity))
}

// HandleLogin handles POST /auth/login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[identityModel.LoginRequest](w, r)
	if !ok {
		return
	}

	code, err := h.service.Login(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "login refused",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "login succeeded", "request_id", requestID)
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessCode:       code.Value,
		ExpiresInSeconds: code.RemainingSeconds(requestcontext.Now(ctx)),
	})
}

// HandleCodeStatus handles GET /auth/code requests.
func (h *Handler) HandleCodeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	remaining, err := h.service.RemainingSeconds(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "code status failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, CodeStatusResponse{RemainingSeconds: remaining})
}

// HandleEnterVault handles POST /vault requests.
func (h *Handler) HandleEnterVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[EnterVaultRequest](w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.EnterVault(ctx, req.AccessCode)
	if err != nil {
		h.logger.WarnContext(ctx, "vault entry refused",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "vault entered", "request_id", requestID)
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// HandleDeleteIdentity handles DELETE /identity requests.
func (h *Handler) HandleDeleteIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := h.service.DeleteIdentity(ctx); err != nil {
		h.logger.ErrorContext(ctx, "identity deletion failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "identity deleted", "request_id", requestID)
	w.WriteHeader(http.StatusNoContent)
}

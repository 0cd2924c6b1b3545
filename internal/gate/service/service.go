// Package service orchestrates the identity gate: registration, login,
// access code issuance, vault admission, and identity deletion. It owns no
// state of its own; everything lives behind the injected stores.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	codeModel "trustvault/internal/accesscode/models"
	"trustvault/internal/audit"
	identityModel "trustvault/internal/identity/models"
	"trustvault/internal/platform/metrics"
	vaultModel "trustvault/internal/vault/models"
	dErrors "trustvault/pkg/domain-errors"
	"trustvault/pkg/platform/sentinel"
	"trustvault/pkg/requestcontext"
)

// IdentityStore persists the single identity record.
type IdentityStore interface {
	Create(ctx context.Context, identity *identityModel.Identity) error
	Get(ctx context.Context) (*identityModel.Identity, error)
	Delete(ctx context.Context) error
}

// AccessCodes is the access code lifecycle: issue, validate, count down,
// invalidate.
type AccessCodes interface {
	Issue(ctx context.Context) (*codeModel.AccessCode, error)
	Validate(ctx context.Context, presented string) (bool, error)
	RemainingSeconds(ctx context.Context) (int, error)
	Invalidate(ctx context.Context) error
}

// VaultStore serves the protected snapshot once the gate has been passed.
type VaultStore interface {
	Get(ctx context.Context) (*vaultModel.Snapshot, error)
}

// Service wires the gate together. All failure modes are caller-recoverable;
// login and vault errors stay generic so responses never reveal which check
// failed.
type Service struct {
	identities IdentityStore
	codes      AccessCodes
	vault      VaultStore
	auditor    *audit.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func New(
	identities IdentityStore,
	codes AccessCodes,
	vault VaultStore,
	auditor *audit.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		identities: identities,
		codes:      codes,
		vault:      vault,
		auditor:    auditor,
		metrics:    m,
		logger:     logger,
	}
}

// Register validates the candidate and creates the identity. Exactly one
// identity may exist; a second registration is refused with a conflict so
// the caller can direct the user to login instead.
func (s *Service) Register(ctx context.Context, req *identityModel.RegisterRequest) (*identityModel.Identity, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	identity := &identityModel.Identity{
		ID:               uuid.New(),
		FullName:         req.FullName,
		Email:            req.Email,
		SecurityQuestion: identityModel.SecurityQuestion(req.SecurityQuestion),
		SecurityAnswer:   req.SecurityAnswer,
		Password:         req.Password,
		CreatedAt:        requestcontext.Now(ctx),
	}

	if err := s.identities.Create(ctx, identity); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an identity is already registered; log in instead")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create identity")
	}

	s.metrics.IdentitiesRegistered.Inc()
	s.emit(ctx, audit.Event{Action: audit.ActionIdentityRegistered})
	return identity, nil
}

// Login verifies the presented credentials against the stored identity and,
// on success, issues a fresh access code. The failure message is the same
// whether no identity exists, a field mismatched, or several did.
func (s *Service) Login(ctx context.Context, req *identityModel.LoginRequest) (*codeModel.AccessCode, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.identities.Get(ctx)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load identity")
	}
	if stored == nil || !stored.Matches(req.Credentials()) {
		s.metrics.Logins.WithLabelValues("failure").Inc()
		s.emit(ctx, audit.Event{Action: audit.ActionLoginFailed, Reason: "credential mismatch"})
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication failed")
	}

	code, err := s.codes.Issue(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "issue access code")
	}

	s.metrics.Logins.WithLabelValues("success").Inc()
	s.metrics.AccessCodesIssued.Inc()
	s.emit(ctx, audit.Event{Action: audit.ActionLoginSucceeded})
	s.emit(ctx, audit.Event{Action: audit.ActionCodeIssued})
	return code, nil
}

// RemainingSeconds reports whole seconds until the live code expires, 0 when
// none exists. Intended for UI countdowns; the authoritative check happens
// in EnterVault.
func (s *Service) RemainingSeconds(ctx context.Context) (int, error) {
	remaining, err := s.codes.RemainingSeconds(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "read access code countdown")
	}
	return remaining, nil
}

// EnterVault admits the caller to the vault snapshot when the presented code
// matches the live one. "Never issued", "wrong value", and "expired" are
// deliberately indistinguishable in the response.
func (s *Service) EnterVault(ctx context.Context, presented string) (*vaultModel.Snapshot, error) {
	ok, err := s.codes.Validate(ctx, presented)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "validate access code")
	}
	if !ok {
		s.metrics.CodeValidations.WithLabelValues("refused").Inc()
		s.emit(ctx, audit.Event{Action: audit.ActionVaultRefused, Reason: "invalid or expired access code"})
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired access code")
	}

	snapshot, err := s.vault.Get(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load vault snapshot")
	}

	s.metrics.CodeValidations.WithLabelValues("granted").Inc()
	s.metrics.VaultEntries.Inc()
	s.emit(ctx, audit.Event{Action: audit.ActionVaultEntered})
	return snapshot, nil
}

// DeleteIdentity removes the identity and cascades to the outstanding access
// code. Deleting when nothing is registered succeeds; the end state is the
// same either way.
func (s *Service) DeleteIdentity(ctx context.Context) error {
	if err := s.codes.Invalidate(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "invalidate access code")
	}
	if err := s.identities.Delete(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete identity")
	}

	s.metrics.IdentitiesDeleted.Inc()
	s.emit(ctx, audit.Event{Action: audit.ActionIdentityDeleted})
	return nil
}

// emit records an audit event; audit failures are logged, never surfaced,
// so a slow sink cannot block the gate.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(event.Action),
			"error", err.Error(),
		)
	}
}

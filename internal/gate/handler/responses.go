package handler

import (
	"time"

	"github.com/google/uuid"

	identityModel "trustvault/internal/identity/models"
)

// EnterVaultRequest carries the access code presented at the vault door.
type EnterVaultRequest struct {
	AccessCode string `json:"access_code"`
}

// LoginResponse returns the freshly issued access code and its lifetime.
type LoginResponse struct {
	AccessCode       string `json:"access_code"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// CodeStatusResponse reports the countdown for the outstanding code.
type CodeStatusResponse struct {
	RemainingSeconds int `json:"remaining_seconds"`
}

// IdentityResponse is the public view of a registered identity. Secrets
// never leave the service.
type IdentityResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func fromIdentity(i *identityModel.Identity) IdentityResponse {
	return IdentityResponse{
		ID:        i.ID,
		FullName:  i.FullName,
		Email:     i.Email,
		CreatedAt: i.CreatedAt,
	}
}

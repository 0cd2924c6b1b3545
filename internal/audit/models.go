package audit

import "time"

// Action identifies a lifecycle event on the gate.
type Action string

const (
	ActionIdentityRegistered Action = "identity.registered"
	ActionIdentityDeleted    Action = "identity.deleted"
	ActionLoginSucceeded     Action = "login.succeeded"
	ActionLoginFailed        Action = "login.failed"
	ActionCodeIssued         Action = "code.issued"
	ActionVaultEntered       Action = "vault.entered"
	ActionVaultRefused       Action = "vault.refused"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out. Secrets and access
// code values never go into events.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Action    Action    `json:"action"`
	Reason    string    `json:"reason,omitempty"`
}

package models

import (
	"regexp"
	"strings"

	dErrors "trustvault/pkg/domain-errors"
)

// Matches the registration form's plausibility check: something, an @,
// something, a dot, something. Not RFC 5322; intentionally loose.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const minPasswordLength = 8

// RegisterRequest is the registration payload. Secrets are kept verbatim;
// only display fields are trimmed.
type RegisterRequest struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
}

func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.FullName) > 255 {
		return dErrors.NewField(dErrors.CodeValidation, "full_name", "full name must be 255 characters or less")
	}
	if len(r.Email) > 255 {
		return dErrors.NewField(dErrors.CodeValidation, "email", "email must be 255 characters or less")
	}

	if r.FullName == "" {
		return dErrors.NewField(dErrors.CodeValidation, "full_name", "full name is required")
	}
	if r.Email == "" {
		return dErrors.NewField(dErrors.CodeValidation, "email", "email is required")
	}
	if strings.TrimSpace(r.SecurityAnswer) == "" {
		return dErrors.NewField(dErrors.CodeValidation, "security_answer", "security answer is required")
	}
	if r.Password == "" {
		return dErrors.NewField(dErrors.CodeValidation, "password", "password is required")
	}

	if !emailPattern.MatchString(r.Email) {
		return dErrors.NewField(dErrors.CodeValidation, "email", "email is invalid")
	}
	if len(r.Password) < minPasswordLength {
		return dErrors.NewField(dErrors.CodeValidation, "password", "password must be at least 8 characters")
	}

	if !SecurityQuestion(r.SecurityQuestion).IsValid() {
		return dErrors.NewField(dErrors.CodeValidation, "security_question", "security question is not one of the supported prompts")
	}
	if r.Password != r.ConfirmPassword {
		return dErrors.NewField(dErrors.CodeValidation, "confirm_password", "passwords do not match")
	}

	return nil
}

// LoginRequest is the login payload. Every field participates in the match.
type LoginRequest struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
	Password         string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate only checks presence. Which field mismatched is never reported;
// credential comparison happens in the service and fails generically.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.FullName == "" || r.Email == "" || r.SecurityQuestion == "" ||
		r.SecurityAnswer == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "all login fields are required")
	}
	return nil
}

// Credentials converts the login payload into the domain comparison value.
func (r *LoginRequest) Credentials() Credentials {
	return Credentials{
		FullName:         r.FullName,
		Email:            r.Email,
		SecurityQuestion: SecurityQuestion(r.SecurityQuestion),
		SecurityAnswer:   r.SecurityAnswer,
		Password:         r.Password,
	}
}

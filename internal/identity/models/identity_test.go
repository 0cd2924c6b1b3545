package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "trustvault/pkg/domain-errors"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var de *dErrors.Error
	require.True(t, errors.As(err, &de), "expected a domain error, got %v", err)
	return de.Field
}

func storedIdentity() *Identity {
	return &Identity{
		FullName:         "A",
		Email:            "a@b.com",
		SecurityQuestion: QuestionBirthCity,
		SecurityAnswer:   "x",
		Password:         "password1",
	}
}

func matchingCredentials() Credentials {
	return Credentials{
		FullName:         "A",
		Email:            "a@b.com",
		SecurityQuestion: QuestionBirthCity,
		SecurityAnswer:   "x",
		Password:         "password1",
	}
}

func TestMatchesRequiresEveryField(t *testing.T) {
	stored := storedIdentity()

	assert.True(t, stored.Matches(matchingCredentials()))

	// Changing any single field must flip the result.
	mutations := map[string]func(*Credentials){
		"full_name":         func(c *Credentials) { c.FullName = "B" },
		"email":             func(c *Credentials) { c.Email = "b@b.com" },
		"security_question": func(c *Credentials) { c.SecurityQuestion = QuestionFirstCar },
		"security_answer":   func(c *Credentials) { c.SecurityAnswer = "y" },
		"password":          func(c *Credentials) { c.Password = "password2" },
	}
	for field, mutate := range mutations {
		t.Run("mismatch on "+field, func(t *testing.T) {
			creds := matchingCredentials()
			mutate(&creds)
			assert.False(t, stored.Matches(creds))
		})
	}
}

func TestMatchesIsCaseSensitive(t *testing.T) {
	stored := storedIdentity()
	creds := matchingCredentials()
	creds.SecurityAnswer = "X"
	assert.False(t, stored.Matches(creds))
}

func TestMatchesOnNilIdentity(t *testing.T) {
	var stored *Identity
	assert.False(t, stored.Matches(matchingCredentials()))
}

func TestSecurityQuestionIsValid(t *testing.T) {
	for _, q := range SecurityQuestions() {
		assert.True(t, q.IsValid(), "expected %q to be valid", q)
	}
	assert.False(t, SecurityQuestion("What is your favorite color?").IsValid())
	assert.False(t, SecurityQuestion("").IsValid())
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		FullName:         "A",
		Email:            "a@b.com",
		SecurityQuestion: string(QuestionBirthCity),
		SecurityAnswer:   "x",
		Password:         "password1",
		ConfirmPassword:  "password1",
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("accepts a complete request", func(t *testing.T) {
		req := validRegisterRequest()
		req.Normalize()
		require.NoError(t, req.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"missing full name", func(r *RegisterRequest) { r.FullName = "" }, "full_name"},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"invalid email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"missing security answer", func(r *RegisterRequest) { r.SecurityAnswer = "  " }, "security_answer"},
		{"unknown security question", func(r *RegisterRequest) { r.SecurityQuestion = "What is 2+2?" }, "security_question"},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }, "password"},
		{"short password", func(r *RegisterRequest) { r.Password = "short"; r.ConfirmPassword = "short" }, "password"},
		{"confirmation mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "password2" }, "confirm_password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(req)
			req.Normalize()
			err := req.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.field, fieldOf(t, err))
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	full := &LoginRequest{
		FullName:         "A",
		Email:            "a@b.com",
		SecurityQuestion: string(QuestionBirthCity),
		SecurityAnswer:   "x",
		Password:         "password1",
	}
	require.NoError(t, full.Validate())

	empty := &LoginRequest{}
	require.Error(t, empty.Validate())
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// SecurityQuestion is one of the fixed challenge prompts offered at
// registration. Construct via the enum constants or check membership with
// IsValid; free-text prompts are rejected.
type SecurityQuestion string

const (
	QuestionCurrentPet  SecurityQuestion = "What is the name of your current pet?"
	QuestionBirthCity   SecurityQuestion = "In which city were you born?"
	QuestionFirstCar    SecurityQuestion = "What was your first car?"
	QuestionMothersName SecurityQuestion = "What is your mother's name?"
	QuestionSchoolName  SecurityQuestion = "What was the name of your school?"
)

// SecurityQuestions lists the supported prompts in display order.
func SecurityQuestions() []SecurityQuestion {
	return []SecurityQuestion{
		QuestionCurrentPet,
		QuestionBirthCity,
		QuestionFirstCar,
		QuestionMothersName,
		QuestionSchoolName,
	}
}

// IsValid reports whether q is one of the supported prompts.
func (q SecurityQuestion) IsValid() bool {
	for _, known := range SecurityQuestions() {
		if q == known {
			return true
		}
	}
	return false
}

// Identity is the single registered identity record. At most one exists at a
// time; the store enforces the singleton invariant.
type Identity struct {
	ID               uuid.UUID
	FullName         string
	Email            string
	SecurityQuestion SecurityQuestion
	SecurityAnswer   string
	Password         string
	CreatedAt        time.Time
}

// Credentials is the set of fields a caller presents at login.
type Credentials struct {
	FullName         string
	Email            string
	SecurityQuestion SecurityQuestion
	SecurityAnswer   string
	Password         string
}

// Matches reports whether the presented credentials equal the stored record
// on every field. Comparison is exact and case-sensitive; no partial match
// (password-only, email-only) is sufficient.
func (i *Identity) Matches(c Credentials) bool {
	if i == nil {
		return false
	}
	return c.Email == i.Email &&
		c.Password == i.Password &&
		c.FullName == i.FullName &&
		c.SecurityQuestion == i.SecurityQuestion &&
		c.SecurityAnswer == i.SecurityAnswer
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"trustvault/internal/identity/models"
	"trustvault/pkg/platform/sentinel"
)

type IdentityStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *IdentityStoreSuite) SetupTest() {
	s.store = New()
}

func TestIdentityStoreSuite(t *testing.T) {
	suite.Run(t, new(IdentityStoreSuite))
}

func makeIdentity() *models.Identity {
	return &models.Identity{
		ID:               uuid.New(),
		FullName:         "A",
		Email:            "a@b.com",
		SecurityQuestion: models.QuestionBirthCity,
		SecurityAnswer:   "x",
		Password:         "password1",
		CreatedAt:        time.Now(),
	}
}

func (s *IdentityStoreSuite) TestCreateAndGet() {
	s.Run("returns stored identity after create", func() {
		identity := makeIdentity()
		s.Require().NoError(s.store.Create(context.Background(), identity))

		found, err := s.store.Get(context.Background())
		s.Require().NoError(err)
		s.Equal(identity, found)
	})

	s.Run("get returns ErrNotFound when nothing registered", func() {
		_, err := New().Get(context.Background())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *IdentityStoreSuite) TestSingletonInvariant() {
	s.Run("second create returns ErrConflict", func() {
		store := New()
		s.Require().NoError(store.Create(context.Background(), makeIdentity()))

		err := store.Create(context.Background(), makeIdentity())
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("conflicting create does not replace the record", func() {
		store := New()
		first := makeIdentity()
		s.Require().NoError(store.Create(context.Background(), first))

		second := makeIdentity()
		second.Email = "other@b.com"
		_ = store.Create(context.Background(), second)

		found, err := store.Get(context.Background())
		s.Require().NoError(err)
		s.Equal(first.Email, found.Email)
	})
}

func (s *IdentityStoreSuite) TestDelete() {
	s.Run("delete removes the record", func() {
		store := New()
		s.Require().NoError(store.Create(context.Background(), makeIdentity()))
		s.Require().NoError(store.Delete(context.Background()))

		_, err := store.Get(context.Background())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("delete is idempotent when absent", func() {
		s.Require().NoError(New().Delete(context.Background()))
	})

	s.Run("create succeeds again after delete", func() {
		store := New()
		s.Require().NoError(store.Create(context.Background(), makeIdentity()))
		s.Require().NoError(store.Delete(context.Background()))
		s.Require().NoError(store.Create(context.Background(), makeIdentity()))
	})
}

func (s *IdentityStoreSuite) TestGetReturnsCopy() {
	store := New()
	identity := makeIdentity()
	s.Require().NoError(store.Create(context.Background(), identity))

	found, err := store.Get(context.Background())
	s.Require().NoError(err)
	found.Password = "mutated"

	again, err := store.Get(context.Background())
	s.Require().NoError(err)
	s.Equal("password1", again.Password)
}

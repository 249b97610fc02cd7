// Package memory implements storage.Store with plain slices.
//
// It mirrors the behavior of the SQLite store with linear scans and is used
// for fast local testing and as a development backend.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/budgetfold/backend/internal/models"
	"github.com/budgetfold/backend/internal/storage"
)

type Store struct {
	mu           sync.Mutex
	envelopes    []models.Envelope
	transactions []models.Transaction
	users        []models.User
}

var _ storage.Store = &Store{}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) Envelopes(_ context.Context, userID uint64) ([]models.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	envelopes := make([]models.Envelope, 0)
	for _, envelope := range s.envelopes {
		if envelope.UserID == userID {
			envelopes = append(envelopes, envelope)
		}
	}

	return envelopes, nil
}

func (s *Store) Envelope(_ context.Context, userID, id uint64) (models.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findEnvelope(userID, id)
	if i < 0 {
		return models.Envelope{}, fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	return s.envelopes[i], nil
}

func (s *Store) CreateEnvelope(_ context.Context, envelope *models.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	envelope.ID = s.nextEnvelopeID()
	envelope.CreatedAt = time.Now().In(time.UTC)
	envelope.UpdatedAt = envelope.CreatedAt
	s.envelopes = append(s.envelopes, *envelope)

	return nil
}

func (s *Store) UpdateEnvelope(_ context.Context, envelope models.Envelope) (models.Envelope, error) {
	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateEnvelope(envelope)
}

func (s *Store) UpdateEnvelopePair(_ context.Context, first, second models.Envelope) (models.Envelope, models.Envelope, error) {
	// Validate both sides before any record changes so that a violation on
	// either envelope leaves the pair untouched.
	if err := first.Validate(); err != nil {
		return models.Envelope{}, models.Envelope{}, err
	}
	if err := second.Validate(); err != nil {
		return models.Envelope{}, models.Envelope{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findEnvelope(first.UserID, first.ID) < 0 || s.findEnvelope(second.UserID, second.ID) < 0 {
		return models.Envelope{}, models.Envelope{}, fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	first, _ = s.updateEnvelope(first)
	second, _ = s.updateEnvelope(second)

	return first, second, nil
}

func (s *Store) DeleteEnvelope(_ context.Context, userID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findEnvelope(userID, id)
	if i < 0 {
		return fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	s.envelopes = append(s.envelopes[:i], s.envelopes[i+1:]...)
	return nil
}

func (s *Store) Transactions(_ context.Context, userID uint64) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]models.Transaction, 0)
	for _, transaction := range s.transactions {
		if transaction.UserID == userID {
			transactions = append(transactions, transaction)
		}
	}

	return transactions, nil
}

func (s *Store) Transaction(_ context.Context, userID, id uint64) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTransaction(userID, id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("%w transaction matching your query", models.ErrResourceNotFound)
	}

	return s.transactions[i], nil
}

func (s *Store) SaveTransactionWithEnvelope(_ context.Context, transaction *models.Transaction, envelope models.Envelope) (models.Envelope, error) {
	if err := transaction.Validate(); err != nil {
		return models.Envelope{}, err
	}
	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findEnvelope(envelope.UserID, envelope.ID) < 0 {
		return models.Envelope{}, fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	if transaction.ID == 0 {
		transaction.ID = s.nextTransactionID()
		transaction.CreatedAt = time.Now().In(time.UTC)
		transaction.UpdatedAt = transaction.CreatedAt
		transaction.Normalize()
		s.transactions = append(s.transactions, *transaction)
	} else {
		i := s.findTransaction(transaction.UserID, transaction.ID)
		if i < 0 {
			return models.Envelope{}, fmt.Errorf("%w transaction matching your query", models.ErrResourceNotFound)
		}

		transaction.CreatedAt = s.transactions[i].CreatedAt
		transaction.UpdatedAt = time.Now().In(time.UTC)
		transaction.Normalize()
		s.transactions[i] = *transaction
	}

	return s.updateEnvelope(envelope)
}

func (s *Store) DeleteTransactionWithEnvelope(_ context.Context, userID, id uint64, envelope models.Envelope) (models.Envelope, error) {
	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTransaction(userID, id)
	if i < 0 {
		return models.Envelope{}, fmt.Errorf("%w transaction matching your query", models.ErrResourceNotFound)
	}

	if s.findEnvelope(envelope.UserID, envelope.ID) < 0 {
		return models.Envelope{}, fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
	return s.updateEnvelope(envelope)
}

func (s *Store) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}

	return models.User{}, fmt.Errorf("%w user matching your query", models.ErrResourceNotFound)
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID uint64
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.ErrEmailTaken
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	user.ID = maxID + 1
	user.CreatedAt = time.Now().In(time.UTC)
	user.UpdatedAt = user.CreatedAt
	s.users = append(s.users, *user)

	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

// updateEnvelope overwrites the stored record. Callers hold the lock.
func (s *Store) updateEnvelope(envelope models.Envelope) (models.Envelope, error) {
	i := s.findEnvelope(envelope.UserID, envelope.ID)
	if i < 0 {
		return models.Envelope{}, fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	envelope.CreatedAt = s.envelopes[i].CreatedAt
	envelope.UpdatedAt = time.Now().In(time.UTC)
	s.envelopes[i] = envelope

	return envelope, nil
}

func (s *Store) findEnvelope(userID, id uint64) int {
	for i, envelope := range s.envelopes {
		if envelope.UserID == userID && envelope.ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) findTransaction(userID, id uint64) int {
	for i, transaction := range s.transactions {
		if transaction.UserID == userID && transaction.ID == id {
			return i
		}
	}

	return -1
}

// The next ids are one higher than the current maximum over all users so
// that ids stay unique across the whole store.
func (s *Store) nextEnvelopeID() uint64 {
	var maxID uint64
	for _, envelope := range s.envelopes {
		if envelope.ID > maxID {
			maxID = envelope.ID
		}
	}

	return maxID + 1
}

func (s *Store) nextTransactionID() uint64 {
	var maxID uint64
	for _, transaction := range s.transactions {
		if transaction.ID > maxID {
			maxID = transaction.ID
		}
	}

	return maxID + 1
}

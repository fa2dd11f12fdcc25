package session

import (
	"context"
	"sync"
	"time"

	"auth-session-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

// MemoryStore is the default single-process session store: a mutex-guarded
// token -> record table with lazy eviction of expired records.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*models.SessionRecord
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*models.SessionRecord),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context, username string) (*models.SessionRecord, error) {
	token, err := GenerateToken()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate session token")
		return nil, err
	}

	now := time.Now()
	record := &models.SessionRecord{
		Token:       token,
		Username:    username,
		LastLogin:   now,
		Preferences: models.Preferences{Theme: models.ThemeLight},
		ExpiresAt:   now.Add(s.ttl),
	}

	s.mu.Lock()
	s.records[token] = record
	s.mu.Unlock()

	logrus.WithField("username", username).Debug("Session created")
	copied := *record
	return &copied, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*models.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[token]
	if !ok {
		return nil, nil
	}

	if !time.Now().Before(record.ExpiresAt) {
		delete(s.records, token)
		logrus.WithField("username", record.Username).Debug("Expired session evicted")
		return nil, nil
	}

	copied := *record
	return &copied, nil
}

func (s *MemoryStore) SetTheme(_ context.Context, token, theme string) (*models.SessionRecord, error) {
	if !models.IsValidTheme(theme) {
		return nil, models.ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[token]
	if !ok || !time.Now().Before(record.ExpiresAt) {
		if ok {
			delete(s.records, token)
		}
		return nil, models.ErrSessionNotFound
	}

	record.Preferences.Theme = theme

	copied := *record
	return &copied, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[token]; !ok {
		return models.ErrSessionNotFound
	}

	delete(s.records, token)
	return nil
}

// RunJanitor periodically sweeps expired records until ctx is cancelled.
// Get always re-checks expiry, so the sweep only reclaims memory.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.sweep()
			if removed > 0 {
				logrus.WithField("removed", removed).Debug("Session janitor swept expired records")
			}
		}
	}
}

func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, record := range s.records {
		if !now.Before(record.ExpiresAt) {
			delete(s.records, token)
			removed++
		}
	}
	return removed
}

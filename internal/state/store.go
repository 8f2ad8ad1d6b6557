package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Snapshot is the catalog API's health as seen by this session.
type Snapshot struct {
	Requests            int
	Failures            int
	Attribution         string
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed requests
}

// IsOffline returns true when the API has failed several requests in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// HasContact reports whether any request has been observed.
func (s Snapshot) HasContact() bool {
	return s.Requests > 0
}

// Store records request outcomes reported by the catalog client. It is safe
// for concurrent use: requests complete on command goroutines while the UI
// reads snapshots.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// ObserveRequest records one request. Cancelled requests were superseded by
// the user and are not counted. The attribution text is kept from the latest
// response that carried one.
func (s *Store) ObserveRequest(attribution string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Requests++
	s.snapshot.LastUpdated = s.clock()
	if text := strings.TrimSpace(attribution); text != "" {
		s.snapshot.Attribution = text
	}

	if err != nil {
		s.snapshot.Failures++
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-insights/internal/models"
)

type SessionState string

const (
	StateUploaded        SessionState = "uploaded"
	StateInsightsReady   SessionState = "insights_ready"
	StateJobDetailsReady SessionState = "job_details_ready"
	StateFitAssessed     SessionState = "fit_assessed"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoDocument      = errors.New("no resume uploaded for this session")
	ErrNoProfile       = errors.New("no candidate profile extracted yet")
	ErrNoJobDetails    = errors.New("no job details extracted yet")
)

// Session is the per-user cache of stage results. Each slot holds at most the
// most recent result and is only ever written by the store.
type Session struct {
	ID          uuid.UUID
	Document    *models.Document
	Profile     *models.CandidateProfile
	RawInsights json.RawMessage
	JobDetails  *models.JobDetails
	Fit         *models.FitAssessment
	LastActive  time.Time
}

// State derives the stage the session has reached from its populated slots.
func (s *Session) State() SessionState {
	switch {
	case s.Fit != nil:
		return StateFitAssessed
	case s.JobDetails != nil:
		return StateJobDetailsReady
	case s.Profile != nil:
		return StateInsightsReady
	default:
		return StateUploaded
	}
}

type SessionStore interface {
	Create(doc *models.Document) *Session
	Attach(id uuid.UUID, doc *models.Document) (*Session, error)
	Get(id uuid.UUID) (*Session, error)
	SetProfile(id uuid.UUID, profile *models.CandidateProfile) error
	SetRawInsights(id uuid.UUID, raw json.RawMessage) error
	SetJobDetails(id uuid.UUID, details *models.JobDetails) error
	SetFit(id uuid.UUID, fit *models.FitAssessment) error
	Start()
	Stop()
}

type sessionStore struct {
	ttl           time.Duration
	sweepInterval time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewSessionStore(ttl, sweepInterval time.Duration) SessionStore {
	return &sessionStore{
		ttl:           ttl,
		sweepInterval: sweepInterval,
		sessions:      make(map[uuid.UUID]*Session),
		stopChan:      make(chan struct{}),
	}
}

// Create implements SessionStore.
func (st *sessionStore) Create(doc *models.Document) *Session {
	session := &Session{
		ID:         uuid.New(),
		Document:   doc,
		LastActive: time.Now(),
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	log.Printf("📥 Session %s created\n", session.ID)
	return session
}

// Attach replaces the session's resume with a newly uploaded one. The cached
// profile, job details and fit assessment all describe the previous resume, so
// every downstream slot is cleared.
func (st *sessionStore) Attach(id uuid.UUID, doc *models.Document) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.Document = doc
	session.Profile = nil
	session.RawInsights = nil
	session.JobDetails = nil
	session.Fit = nil
	session.LastActive = time.Now()

	snapshot := *session
	return &snapshot, nil
}

// Get implements SessionStore. Returns a snapshot; callers read, never
// mutate. Reads do not refresh the activity clock, only stage writes do.
func (st *sessionStore) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	snapshot := *session
	return &snapshot, nil
}

// SetProfile implements SessionStore.
func (st *sessionStore) SetProfile(id uuid.UUID, profile *models.CandidateProfile) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if session.Document == nil {
		return ErrNoDocument
	}

	session.Profile = profile
	session.RawInsights = nil
	session.LastActive = time.Now()
	return nil
}

// SetRawInsights keeps the unvalidated agent value when the schema check
// fails, so it can be surfaced for inspection without advancing the session.
func (st *sessionStore) SetRawInsights(id uuid.UUID, raw json.RawMessage) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	session.RawInsights = raw
	session.LastActive = time.Now()
	return nil
}

// SetJobDetails implements SessionStore.
func (st *sessionStore) SetJobDetails(id uuid.UUID, details *models.JobDetails) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if session.Profile == nil {
		return ErrNoProfile
	}

	session.JobDetails = details
	session.LastActive = time.Now()
	return nil
}

// SetFit implements SessionStore.
func (st *sessionStore) SetFit(id uuid.UUID, fit *models.FitAssessment) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if session.Profile == nil {
		return ErrNoProfile
	}
	if session.JobDetails == nil {
		return ErrNoJobDetails
	}

	session.Fit = fit
	session.LastActive = time.Now()
	return nil
}

// Start launches the background sweeper that drops sessions idle for longer
// than the TTL.
func (st *sessionStore) Start() {
	st.wg.Add(1)
	go st.sweepExpired()
	log.Printf("🚀 Session sweeper started (ttl=%s interval=%s)\n", st.ttl, st.sweepInterval)
}

// Stop implements SessionStore.
func (st *sessionStore) Stop() {
	close(st.stopChan)
	st.wg.Wait()
	log.Println("✅ Session sweeper stopped")
}

func (st *sessionStore) sweepExpired() {
	defer st.wg.Done()
	ticker := time.NewTicker(st.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stopChan:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-st.ttl)

			st.mu.Lock()
			for id, session := range st.sessions {
				if session.LastActive.Before(cutoff) {
					delete(st.sessions, id)
					log.Printf("🧹 Session %s expired\n", id)
				}
			}
			st.mu.Unlock()
		}
	}
}

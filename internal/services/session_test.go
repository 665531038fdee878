package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-insights/internal/models"
)

func newTestStore() SessionStore {
	return NewSessionStore(time.Hour, time.Minute)
}

func testDocument() *models.Document {
	return &models.Document{
		ID:        uuid.New(),
		Filename:  "resume_test.pdf",
		FilePath:  "/uploads/resume_test.pdf",
		PageCount: 2,
	}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := newTestStore()

	session := store.Create(testDocument())
	assert.Equal(t, StateUploaded, session.State())

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.NotNil(t, got.Document)
}

func TestSessionStore_GetUnknown(t *testing.T) {
	store := newTestStore()

	_, err := store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_StateProgression(t *testing.T) {
	store := newTestStore()
	session := store.Create(testDocument())

	require.NoError(t, store.SetProfile(session.ID, &models.CandidateProfile{Name: "John"}))
	got, _ := store.Get(session.ID)
	assert.Equal(t, StateInsightsReady, got.State())

	require.NoError(t, store.SetJobDetails(session.ID, &models.JobDetails{Result: "role"}))
	got, _ = store.Get(session.ID)
	assert.Equal(t, StateJobDetailsReady, got.State())

	require.NoError(t, store.SetFit(session.ID, &models.FitAssessment{PercentageMatch: 70}))
	got, _ = store.Get(session.ID)
	assert.Equal(t, StateFitAssessed, got.State())
}

func TestSessionStore_StageGating(t *testing.T) {
	store := newTestStore()
	session := store.Create(testDocument())

	err := store.SetJobDetails(session.ID, &models.JobDetails{Result: "role"})
	assert.ErrorIs(t, err, ErrNoProfile)

	err = store.SetFit(session.ID, &models.FitAssessment{})
	assert.ErrorIs(t, err, ErrNoProfile)

	require.NoError(t, store.SetProfile(session.ID, &models.CandidateProfile{}))
	err = store.SetFit(session.ID, &models.FitAssessment{})
	assert.ErrorIs(t, err, ErrNoJobDetails)
}

func TestSessionStore_AttachClearsDownstream(t *testing.T) {
	store := newTestStore()
	session := store.Create(testDocument())

	require.NoError(t, store.SetProfile(session.ID, &models.CandidateProfile{Name: "John"}))
	require.NoError(t, store.SetJobDetails(session.ID, &models.JobDetails{Result: "role"}))
	require.NoError(t, store.SetFit(session.ID, &models.FitAssessment{PercentageMatch: 70}))

	newDoc := testDocument()
	updated, err := store.Attach(session.ID, newDoc)
	require.NoError(t, err)

	assert.Equal(t, newDoc.ID, updated.Document.ID)
	assert.Nil(t, updated.Profile, "a new resume invalidates the old profile")
	assert.Nil(t, updated.JobDetails, "stale job details must not feed a new fit assessment")
	assert.Nil(t, updated.Fit)
	assert.Equal(t, StateUploaded, updated.State())
}

func TestSessionStore_AttachUnknown(t *testing.T) {
	store := newTestStore()

	_, err := store.Attach(uuid.New(), testDocument())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_RawInsightsKeptWithoutAdvancing(t *testing.T) {
	store := newTestStore()
	session := store.Create(testDocument())

	raw := json.RawMessage(`{"unexpected":"shape"}`)
	require.NoError(t, store.SetRawInsights(session.ID, raw))

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, StateUploaded, got.State(), "a schema mismatch must not advance the session")
	assert.JSONEq(t, string(raw), string(got.RawInsights))

	// A later valid profile clears the stashed raw value.
	require.NoError(t, store.SetProfile(session.ID, &models.CandidateProfile{Name: "John"}))
	got, _ = store.Get(session.ID)
	assert.Nil(t, got.RawInsights)
}

func TestSessionStore_SweeperDropsIdleSessions(t *testing.T) {
	store := NewSessionStore(10*time.Millisecond, 10*time.Millisecond)
	store.Start()
	defer store.Stop()

	session := store.Create(testDocument())

	assert.Eventually(t, func() bool {
		_, err := store.Get(session.ID)
		return err == ErrSessionNotFound
	}, time.Second, 5*time.Millisecond)
}

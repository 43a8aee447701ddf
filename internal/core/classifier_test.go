package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubLLM returns canned classifications or errors and counts calls
type stubLLM struct {
	mu     sync.Mutex
	calls  int
	result *Classification
	err    error
}

func (s *stubLLM) ClassifyEmail(ctx context.Context, subject, snippet string) (*Classification, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	c := *s.result
	return &c, nil
}

func (s *stubLLM) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeCache is a trivial in-memory CacheRepository for tests
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]Classification
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]Classification)}
}

func (f *fakeCache) Get(ctx context.Context, messageID string) (*Classification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.entries[messageID]
	if !ok {
		return nil, false
	}
	return &c, true
}

func (f *fakeCache) Set(ctx context.Context, messageID string, c *Classification, ttl time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[messageID] = *c
}

func (f *fakeCache) Delete(ctx context.Context, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, messageID)
	return nil
}

func (f *fakeCache) Cleanup(ctx context.Context) error { return nil }

func TestClassifierNeverFails(t *testing.T) {
	llm := &stubLLM{err: errors.New("connection reset by peer")}
	classifier := NewClassifier(llm, nil, zap.NewNop(), false, 0)

	got := classifier.Classify(context.Background(), Message{
		ID:      "m1",
		Subject: "free cash",
		Snippet: "click here",
	})

	assert.False(t, got.IsSpam)
	assert.NotEmpty(t, got.Reason)
	assert.False(t, got.HasUnsubscribeLink)
	assert.Nil(t, got.IdentifiedLink)
}

func TestClassifierQuotaDiagnostic(t *testing.T) {
	llm := &stubLLM{err: errors.New("googleapi: Error 429: quota exceeded for model")}
	classifier := NewClassifier(llm, nil, zap.NewNop(), false, 0)

	got := classifier.Classify(context.Background(), Message{ID: "m1", Subject: "free"})

	assert.False(t, got.IsSpam)
	assert.Contains(t, got.Reason, "quota or rate limit")
}

func TestClassifierEmptyContentShortCircuits(t *testing.T) {
	llm := &stubLLM{result: &Classification{IsSpam: true, Reason: "should not be used"}}
	classifier := NewClassifier(llm, nil, zap.NewNop(), false, 0)

	got := classifier.Classify(context.Background(), Message{ID: "m1"})

	assert.False(t, got.IsSpam)
	assert.Equal(t, "No content provided to analyze.", got.Reason)
	assert.Equal(t, 0, llm.callCount())
}

func TestClassifierEnforcesLinkInvariant(t *testing.T) {
	link := "http://x/unsub"
	llm := &stubLLM{result: &Classification{
		IsSpam:             true,
		Reason:             "promo",
		HasUnsubscribeLink: false,
		IdentifiedLink:     &link,
	}}
	classifier := NewClassifier(llm, nil, zap.NewNop(), false, 0)

	got := classifier.Classify(context.Background(), Message{ID: "m1", Subject: "free"})

	assert.True(t, got.IsSpam)
	assert.Nil(t, got.IdentifiedLink)
}

func TestClassifierUsesCache(t *testing.T) {
	llm := &stubLLM{result: &Classification{IsSpam: true, Reason: "promo"}}
	cache := newFakeCache()
	classifier := NewClassifier(llm, cache, zap.NewNop(), true, time.Hour)

	msg := Message{ID: "m1", Subject: "free cash"}

	first := classifier.Classify(context.Background(), msg)
	require.True(t, first.IsSpam)
	assert.Equal(t, 1, llm.callCount())

	// Second classification of the same message comes from the cache
	second := classifier.Classify(context.Background(), msg)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, llm.callCount())
}

func TestClassifierCacheDisabled(t *testing.T) {
	llm := &stubLLM{result: &Classification{IsSpam: false, Reason: "fine"}}
	cache := newFakeCache()
	classifier := NewClassifier(llm, cache, zap.NewNop(), false, time.Hour)

	msg := Message{ID: "m1", Subject: "free cash"}
	classifier.Classify(context.Background(), msg)
	classifier.Classify(context.Background(), msg)

	assert.Equal(t, 2, llm.callCount())
}

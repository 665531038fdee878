package roeai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// Memoizer wraps an AgentAPI and caches successful results keyed by a hash of
// the full argument tuple. A repeated identical call never reaches the
// network. Entries are never evicted; call volume is a handful per interactive
// session, so an unbounded process-lifetime cache is fine.
type Memoizer struct {
	inner AgentAPI

	mu      sync.Mutex
	results map[string]json.RawMessage
}

func NewMemoizer(inner AgentAPI) *Memoizer {
	return &Memoizer{
		inner:   inner,
		results: make(map[string]json.RawMessage),
	}
}

// SubmitFile implements AgentAPI.
func (m *Memoizer) SubmitFile(ctx context.Context, agentID, token, filePath, instruction, pageRange string) (json.RawMessage, error) {
	key := memoKey("file", agentID, token, filePath, instruction, pageRange)
	return m.lookup(key, func() (json.RawMessage, error) {
		return m.inner.SubmitFile(ctx, agentID, token, filePath, instruction, pageRange)
	})
}

// SubmitURLForm implements AgentAPI.
func (m *Memoizer) SubmitURLForm(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	key := memoKey("url", agentID, token, flattenFields(fields))
	return m.lookup(key, func() (json.RawMessage, error) {
		return m.inner.SubmitURLForm(ctx, agentID, token, fields)
	})
}

// SubmitText implements AgentAPI.
func (m *Memoizer) SubmitText(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	key := memoKey("text", agentID, token, flattenFields(fields))
	return m.lookup(key, func() (json.RawMessage, error) {
		return m.inner.SubmitText(ctx, agentID, token, fields)
	})
}

func (m *Memoizer) lookup(key string, call func() (json.RawMessage, error)) (json.RawMessage, error) {
	m.mu.Lock()
	if cached, ok := m.results[key]; ok {
		m.mu.Unlock()
		return cached, nil
	}
	m.mu.Unlock()

	result, err := call()
	if err != nil {
		// Failures are not cached; the user may re-trigger the action.
		return nil, err
	}

	m.mu.Lock()
	m.results[key] = result
	m.mu.Unlock()

	return result, nil
}

func memoKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

func flattenFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString("\x00")
		builder.WriteString(fields[key])
		builder.WriteString("\x00")
	}
	return builder.String()
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// DatasetState yields the raw users/foods/drugs/meal_plans document.
type DatasetState interface {
	Load(ctx context.Context) ([]byte, error)
}

// Preference is one entry of the user preference log.
type Preference struct {
	Item           string `json:"item"`
	PreferenceType string `json:"preference_type"`
	Notes          string `json:"notes"`
}

// PreferenceLog appends a record and reports where the log lives.
type PreferenceLog interface {
	Append(ctx context.Context, p Preference) (location string, err error)
}

// appendPreference adds p to the encoded list in existing. Entries already in
// the list are kept as they are, whatever their shape. Missing or corrupt
// content, or anything that is not a JSON list, starts a fresh list.
func appendPreference(existing []byte, p Preference) ([]byte, error) {
	var prefs []json.RawMessage
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &prefs); err != nil {
			prefs = nil
		}
	}

	record, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode preference: %w", err)
	}
	prefs = append(prefs, record)

	b, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	return b, nil
}

// TestDatasetState is a simple in-memory implementation for testing
type TestDatasetState struct {
	data []byte
	err  error
}

func NewTestDatasetState(data []byte) *TestDatasetState {
	return &TestDatasetState{data: data}
}

func NewTestDatasetStateWithError() *TestDatasetState {
	return &TestDatasetState{err: errors.New("not found")}
}

func (t *TestDatasetState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

// TestPreferenceLog keeps the encoded log in memory.
type TestPreferenceLog struct {
	mu   sync.Mutex
	data []byte
	err  error
}

func NewTestPreferenceLog(initial []byte) *TestPreferenceLog {
	return &TestPreferenceLog{data: initial}
}

func NewTestPreferenceLogWithError() *TestPreferenceLog {
	return &TestPreferenceLog{err: errors.New("disk full")}
}

func (t *TestPreferenceLog) Append(ctx context.Context, p Preference) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return "", t.err
	}
	b, err := appendPreference(t.data, p)
	if err != nil {
		return "", err
	}
	t.data = b
	return "memory", nil
}

// Records decodes everything appended so far.
func (t *TestPreferenceLog) Records() []Preference {
	t.mu.Lock()
	defer t.mu.Unlock()
	var prefs []Preference
	_ = json.Unmarshal(t.data, &prefs)
	return prefs
}

package registrations

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mediaarise/backend/internal/models"
)

type fakeStore struct {
	mu        sync.Mutex
	created   []interface{}
	createErr error
	queryErr  error
	results   map[string]interface{}
	params    []map[string]interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{results: map[string]interface{}{}}
}

func (f *fakeStore) Query(_ context.Context, groq string, params map[string]interface{}, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = append(f.params, params)
	if f.queryErr != nil {
		return f.queryErr
	}
	raw, err := json.Marshal(f.results[groq])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeStore) Create(_ context.Context, doc interface{}) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, doc)
	return "reg-new", nil
}

type fakeSheet struct {
	calls []string
	err   error
}

func (f *fakeSheet) AppendRegistrationRow(_ context.Context, reg *models.Registration, programTitle, registrationID string) error {
	f.calls = append(f.calls, registrationID+"|"+programTitle+"|"+reg.Email)
	return f.err
}

package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mediaarise/backend/internal/models"
)

type fakeStore struct {
	docs []interface{}
	err  error
}

func (f *fakeStore) Create(_ context.Context, doc interface{}) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.docs = append(f.docs, doc)
	return "msg-1", nil
}

func newRouter(t *testing.T, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
	r := gin.New()
	r.POST("/api/contact", NewHandler(svc, zaptest.NewLogger(t)).Submit)
	return r
}

func post(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestSubmitStoresUnreadMessage(t *testing.T) {
	store := &fakeStore{}
	w, out := post(t, newRouter(t, store), `{"name":"Ann","email":"ann@example.com","subject":"Hi","message":"Hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "msg-1", out["id"])

	require.Len(t, store.docs, 1)
	msg := store.docs[0].(models.ContactMessage)
	assert.Equal(t, "contactMessage", msg.Type)
	assert.False(t, msg.Read)
	assert.False(t, msg.Replied)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), msg.SubmittedAt)
}

func TestSubmitMissingField(t *testing.T) {
	store := &fakeStore{}
	w, out := post(t, newRouter(t, store), `{"name":"Ann","email":"ann@example.com","subject":"","message":"Hello"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", out["error"])
	assert.Empty(t, store.docs)
}

func TestSubmitInvalidEmail(t *testing.T) {
	store := &fakeStore{}
	w, out := post(t, newRouter(t, store), `{"name":"Ann","email":"ann.example.com","subject":"Hi","message":"Hello"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email format", out["error"])
	assert.Empty(t, store.docs)
}

func TestSubmitStoreFailureHidesCause(t *testing.T) {
	store := &fakeStore{err: errors.New("sanity: status 401: token sk-secret rejected")}
	w, out := post(t, newRouter(t, store), `{"name":"Ann","email":"ann@example.com","subject":"Hi","message":"Hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send message. Please try again later.", out["error"])
	assert.NotContains(t, w.Body.String(), "sk-secret")
}

func TestSubmitMalformedBody(t *testing.T) {
	w, _ := post(t, newRouter(t, &fakeStore{}), `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

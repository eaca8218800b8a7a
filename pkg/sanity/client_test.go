package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		ProjectID: "proj",
		Dataset:   "production",
		Token:     "tok",
		BaseURL:   srv.URL,
	}, zaptest.NewLogger(t))
}

func TestQueryEncodesParamsAndDecodesResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, `*[_type == "registration" && email == $email]`, r.URL.Query().Get("query"))
		assert.Equal(t, `"a@b.com"`, r.URL.Query().Get("$email"))
		assert.Equal(t, `null`, r.URL.Query().Get("$lastName"))
		_, _ = w.Write([]byte(`{"ms":3,"result":[{"_id":"r1"},{"_id":"r2"}]}`))
	})

	var out []struct {
		ID string `json:"_id"`
	}
	err := c.Query(context.Background(), `*[_type == "registration" && email == $email]`,
		map[string]interface{}{"email": "a@b.com", "lastName": nil}, &out)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "r2", out[1].ID)
}

func TestQueryNullResultLeavesDestUntouched(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ms":1,"result":null}`))
	})
	var out *struct{ ID string }
	require.NoError(t, c.Query(context.Background(), `*[_id == "x"][0]`, nil, &out))
	assert.Nil(t, out)
}

func TestCreateReturnsAssignedID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2024-01-01/data/mutate/production", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("returnIds"))

		var body struct {
			Mutations []map[string]map[string]interface{} `json:"mutations"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Mutations, 1)
		assert.Equal(t, "contactMessage", body.Mutations[0]["create"]["_type"])

		_, _ = w.Write([]byte(`{"transactionId":"tx1","results":[{"id":"doc-1","operation":"create"}]}`))
	})

	id, err := c.Create(context.Background(), map[string]interface{}{"_type": "contactMessage", "name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
}

func TestAPIErrorCarriesDescription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"description":"Insufficient permissions","type":"mutationError"}}`))
	})

	_, err := c.Create(context.Background(), map[string]interface{}{"_type": "registration"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Insufficient permissions", apiErr.Description)
}

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient(Config{}, nil)
	assert.False(t, c.Configured())
	assert.ErrorIs(t, c.Query(context.Background(), "*", nil, nil), ErrNotConfigured)
	_, err := c.Create(context.Background(), map[string]interface{}{"_type": "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

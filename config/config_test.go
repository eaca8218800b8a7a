package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_SHEET_NAME", "")
	t.Setenv("CONTENT_CACHE_TTL_SEC", "")
	t.Setenv("SANITY_WEBHOOK_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Sheet1", cfg.Sheets.SheetName)
	assert.Equal(t, 60, cfg.Redis.CacheTTLSeconds)
	assert.Empty(t, cfg.Webhook.Secret)
}

func TestLoadSanityFallsBackToPublicProjectVars(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "")
	t.Setenv("NEXT_PUBLIC_SANITY_PROJECT_ID", "abc123")
	t.Setenv("SANITY_DATASET", "")
	t.Setenv("NEXT_PUBLIC_SANITY_DATASET", "staging")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.Sanity.ProjectID)
	assert.Equal(t, "staging", cfg.Sanity.Dataset)
}

func TestLoadUnescapesPrivateKey(t *testing.T) {
	t.Setenv("GOOGLE_PRIVATE_KEY", `-----BEGIN-----\nabc\n-----END-----`)
	t.Setenv("GOOGLE_CLIENT_EMAIL", "svc@example.iam.gserviceaccount.com")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "-----BEGIN-----\nabc\n-----END-----", cfg.Sheets.PrivateKey)
	assert.True(t, cfg.Sheets.HasCredentials())
}

func TestSheetsHasCredentials(t *testing.T) {
	assert.False(t, SheetsConfig{}.HasCredentials())
	assert.False(t, SheetsConfig{ClientEmail: "a@b.c"}.HasCredentials())
	assert.True(t, SheetsConfig{CredentialsFile: "/etc/key.json"}.HasCredentials())
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "nope")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, getEnvInt("SOME_INT", 7))
}

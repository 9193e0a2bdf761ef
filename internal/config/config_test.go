package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "AI_BACKEND", "AI_MODEL",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_BASE_URL", "ARK_REGION",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, BackendArk, cfg.AI.Backend)
	assert.Empty(t, cfg.AI.Model)
	assert.Equal(t, 1500, cfg.AI.Generation.MaxLength)
	assert.InDelta(t, 0.8, cfg.AI.Generation.Temperature, 1e-6)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadServerAddrForms(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "9000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)

	t.Setenv("PORT", "127.0.0.1:7000")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)

	t.Setenv("PORT", "80 80")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadPicksBackendWithCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8081/v1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendOpenAI, cfg.AI.Backend)
	assert.Equal(t, "http://localhost:8081/v1", cfg.AI.OpenAI.BaseURL)
	assert.Equal(t, DefaultModel, cfg.AI.Model)
	assert.True(t, cfg.AI.Enabled())
}

func TestLoadRequiresModelForArkAndGemini(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
	}{
		{name: "ark", env: map[string]string{"ARK_API_KEY": "key"}},
		{name: "gemini", env: map[string]string{"GEMINI_API_KEY": "key"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, Backend(tc.name), cfg.AI.Backend)
			assert.Empty(t, cfg.AI.Model)
			assert.False(t, cfg.AI.Enabled())

			t.Setenv("AI_MODEL", "my-model")
			cfg, err = Load()
			require.NoError(t, err)
			assert.Equal(t, "my-model", cfg.AI.Model)
			assert.True(t, cfg.AI.Enabled())
		})
	}
}

func TestLoadPrefersArk(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARK_ACCESS_KEY", "ak")
	t.Setenv("ARK_SECRET_KEY", "sk")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("AI_MODEL", "ep-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendArk, cfg.AI.Backend)
	assert.Equal(t, "ep-123", cfg.AI.Model)
	assert.True(t, cfg.AI.Enabled())
}

func TestLoadExplicitBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_BACKEND", " Gemini ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, cfg.AI.Backend)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_BACKEND", "llama")

	_, err := Load()
	require.ErrorContains(t, err, "AI_BACKEND")
}

func TestNewChatModelRequiresCredentials(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.AI.NewChatModel(t.Context())
	require.Error(t, err)
}

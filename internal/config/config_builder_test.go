package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns the smallest config that passes validate.
func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:         "sign",
			AccessTokenDuration:  time.Minute,
			RefreshTokenDuration: time.Hour,
			EmailTokenDuration:   time.Hour,
		},
		Server: Server{HTTPAddress: "localhost:8000"},
	}
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// An empty builder merges into a zero config, which has no sign key and no
// listen address.
func TestBuild_EmptyBuilder_FailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{App: App{TokenIssuer: "first", Version: "1.0.0"}},
		&StructuredConfig{App: App{TokenIssuer: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
	assert.Equal(t, "1.0.0", cfg.App.Version, "zero fields must not override")
}

func TestBuild_WithDefaults(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "sign"}})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, InMemoryDSN, cfg.Storage.DB.DSN)
	assert.True(t, cfg.Storage.DB.IsInMemory())
	assert.Equal(t, 1, cfg.RateLimit.Times)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Period)
	assert.Equal(t, []string{"http://localhost:8000"}, cfg.App.AllowedOrigins)
	assert.Positive(t, cfg.App.AccessTokenDuration)
	assert.Positive(t, cfg.App.RefreshTokenDuration)
	assert.Positive(t, cfg.App.EmailTokenDuration)
}

func TestBuild_WithDefaults_RequiresSignKey(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:   "grpc only",
			mutate: func(cfg *StructuredConfig) { cfg.Server = Server{GRPCAddress: ":9090"} },
		},
		{
			name:    "no transport",
			mutate:  func(cfg *StructuredConfig) { cfg.Server = Server{} },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "no sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero email token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.EmailTokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *StructuredConfig) { cfg.RateLimit.Times = -1 },
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name:    "rate limit without period",
			mutate:  func(cfg *StructuredConfig) { cfg.RateLimit = RateLimit{Times: 3} },
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name:    "bucket without endpoint",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Avatars.Bucket = "avatars" },
			wantErr: ErrInvalidStorageConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("STORAGE_REDIS_ADDRESS", "localhost:6379")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "localhost:6379", b.configs[0].Storage.Redis.Address)
}

func TestWithEnv_SetsErrorOnInvalidValue(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("RATE_LIMIT_PERIOD", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithEnv_OverridesDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_TOKEN_SIGN_KEY", "sign")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/contacts")

	cfg, err := newConfigBuilder().withDefaults().withEnv().build()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/contacts", cfg.Storage.DB.DSN)
	assert.False(t, cfg.Storage.DB.IsInMemory())
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Mail.Server = "smtp.example.com"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "smtp.example.com", b.configs[1].Mail.Host)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	last := StructuredJSONConfig{}
	last.App.Version = "last-wins"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// JSON is merged last, so it beats the environment.
func TestWithJSON_OverridesEnv(t *testing.T) {
	clearEnvVars(t)
	payload := StructuredJSONConfig{}
	payload.Server.HTTPAddress = "127.0.0.1:9000"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("APP_TOKEN_SIGN_KEY", "sign")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:8080")
	t.Setenv("CONFIG", path)

	cfg, err := newConfigBuilder().withDefaults().withEnv().withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
}

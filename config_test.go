package auth_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-auth-session"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("AUTH_JWT_EXPIRES_IN", "15m")
	t.Setenv("AUTH_JWT_HEADER_KEY", "X-Token")
	t.Setenv("AUTH_JWT_ISSUER", "svc")

	cfg, err := auth.LoadConfig(writeEnvFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Secret)
	assert.Equal(t, 15*time.Minute, cfg.ExpiresIn)
	assert.Equal(t, "X-Token", cfg.HeaderKey)
	assert.Equal(t, "svc", cfg.Issuer)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("AUTH_JWT_EXPIRES_IN", "")
	t.Setenv("AUTH_JWT_HEADER_KEY", "")
	os.Unsetenv("AUTH_JWT_EXPIRES_IN")
	os.Unsetenv("AUTH_JWT_HEADER_KEY")

	cfg, err := auth.LoadConfig(writeEnvFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.ExpiresIn)
	assert.Equal(t, auth.DefaultHeaderKey, cfg.HeaderKey)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// registered so values loaded from the file are restored afterwards
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_EXPIRES_IN", "")
	os.Unsetenv("AUTH_JWT_SECRET")
	os.Unsetenv("AUTH_JWT_EXPIRES_IN")

	cfg, err := auth.LoadConfig(writeEnvFile(t, "AUTH_JWT_SECRET=file-secret\nAUTH_JWT_EXPIRES_IN=2h\n"))
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.Secret)
	assert.Equal(t, 2*time.Hour, cfg.ExpiresIn)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")
		os.Unsetenv("AUTH_JWT_SECRET")

		_, err := auth.LoadConfig(writeEnvFile(t, ""))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "s")
		t.Setenv("AUTH_JWT_EXPIRES_IN", "soon")

		_, err := auth.LoadConfig(writeEnvFile(t, ""))
		assert.Error(t, err)
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := auth.LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, auth.Config{Secret: "s", HeaderKey: "Authorization"}.Validate())
	assert.Error(t, auth.Config{HeaderKey: "Authorization"}.Validate())
	assert.Error(t, auth.Config{Secret: "s"}.Validate())
	assert.Error(t, auth.Config{Secret: "s", HeaderKey: "Authorization", ExpiresIn: -time.Minute}.Validate())

	err := auth.Config{HeaderKey: "Authorization"}.Validate()
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.True(t, auth.IsKind(err, auth.TextCodeInvalidConfig))
	assert.Equal(t, http.StatusBadRequest, auth.StatusCode(err))
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

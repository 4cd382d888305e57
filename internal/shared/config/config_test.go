package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{
		"PORT", "ENV", "GROQ_API_KEY", "LLM_API_KEY", "LLM_BASE_URL", "LLM_MODEL", "LLM_TIMEOUT",
		"PERSIST_BACKEND", "DYNAMODB_TABLE", "AWS_REGION", "ARCHIVE_STORE", "STARTUP_DIAGNOSTIC",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLMBaseURL)
	assert.Equal(t, "deepseek-r1-distill-qwen-32b", cfg.LLMModel)
	assert.Zero(t, cfg.LLMTimeout)
	assert.Equal(t, "none", cfg.PersistBackend)
	assert.Equal(t, "resume_analyses", cfg.DynamoTable)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "none", cfg.ArchiveStoreType)
	assert.False(t, cfg.StartupDiagnostic)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GROQ_API_KEY", " key-1 ")
	t.Setenv("LLM_BASE_URL", "http://localhost:9000/v1/")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("PERSIST_BACKEND", "Dynamo")
	t.Setenv("ARCHIVE_STORE", "S3")
	t.Setenv("ENV", "prod")
	t.Setenv("STARTUP_DIAGNOSTIC", "true")

	cfg := Load()

	assert.Equal(t, "key-1", cfg.LLMAPIKey)
	assert.Equal(t, "http://localhost:9000/v1", cfg.LLMBaseURL)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "dynamodb", cfg.PersistBackend)
	assert.Equal(t, "s3", cfg.ArchiveStoreType)
	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.StartupDiagnostic)
}

func TestLoadFallsBackToLLMAPIKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("LLM_API_KEY", "fallback")

	assert.Equal(t, "fallback", Load().LLMAPIKey)
}

func TestInvalidTimeoutKeepsDefault(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LLM_TIMEOUT", "soon")

	assert.Zero(t, Load().LLMTimeout)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DYNAMODB_TABLE=from_file\nS3_PREFIX=archive\n"), 0o600))
	t.Setenv("DYNAMODB_TABLE", "from_env")
	t.Setenv("S3_PREFIX", "")
	require.NoError(t, os.Unsetenv("S3_PREFIX"))

	cfg := Load()

	assert.Equal(t, "from_env", cfg.DynamoTable)
	assert.Equal(t, "archive", cfg.S3Prefix)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

package globalconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRegion, "eu-central-1")
	t.Setenv(EnvRelease, "noble")
	t.Setenv(EnvArch, "")

	cfg := NewConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "eu-central-1", cfg.Defaults.Region)
	assert.Equal(t, "noble", cfg.Defaults.ReleaseName)
	// set but empty clears the default
	assert.Empty(t, cfg.Defaults.Architecture)
	// unset keeps the default
	assert.Equal(t, "hvm:ebs-ssd", cfg.Defaults.InstanceType)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("UAMI_TEST_DOTENV=from-file\n"), 0644)
	require.NoError(t, err)

	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("UAMI_TEST_DOTENV") })

	LoadDotEnv()
	assert.Equal(t, "from-file", os.Getenv("UAMI_TEST_DOTENV"))
}

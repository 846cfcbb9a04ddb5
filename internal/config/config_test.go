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
	for _, env := range keys {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, 8760*time.Hour, cfg.VisitorRetention)
	assert.Equal(t, 3, cfg.ContactBurst)
	assert.Empty(t, cfg.SMTP.To)
}

func TestLoadEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_USER", "me@example.com")

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/site.db\nvisitor_retention: 720h\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "me@example.com", cfg.SMTP.User)
	assert.Equal(t, "/tmp/site.db", cfg.DBPath)
	assert.Equal(t, 720*time.Hour, cfg.VisitorRetention)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("TO_EMAIL", "")
	os.Unsetenv("TO_EMAIL")
	t.Cleanup(func() { os.Unsetenv("TO_EMAIL") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TO_EMAIL=inbox@example.com\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "inbox@example.com", cfg.SMTP.To)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "8080", VisitorRetention: time.Hour, ContactBurst: 0}
	assert.Error(t, cfg.Validate())

	cfg.ContactBurst = 1
	assert.NoError(t, cfg.Validate())
}

func TestDevAdmin(t *testing.T) {
	cfg := &Config{AdminUsername: "root"}
	assert.True(t, cfg.DevAdmin())
	assert.Equal(t, "root", cfg.AdminUsername)
	assert.Equal(t, "admin123", cfg.AdminPassword)

	cfg = &Config{AdminUsername: "root", AdminPassword: "s3cret"}
	assert.False(t, cfg.DevAdmin())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}

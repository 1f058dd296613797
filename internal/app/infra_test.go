package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, slog.LevelInfo)
	t.Cleanup(func() { logger.InitWithWriter(os.Stdout, slog.LevelInfo) })
	return &buf
}

func TestLoadPrincipals_WarnsForLegacyFileVerifiers(t *testing.T) {
	modern, _, err := credentials.HashPassword("password123")
	require.NoError(t, err)
	legacy, err := bcrypt.GenerateFromPassword([]byte("readonly"), bcrypt.MinCost)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "principals.yaml")
	data := "principals:\n" +
		"  - id: admin\n" +
		"    verifier: '" + modern + "'\n" +
		"    capabilities: [admin]\n" +
		"  - id: reader\n" +
		"    verifier: '" + string(legacy) + "'\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	buf := captureLogs(t)

	cfg := testConfig(t)
	cfg.AdminPasswordHash = ""
	cfg.CredentialsFile = path

	store, err := loadPrincipals(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	var warned []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "legacy scheme") {
			warned = append(warned, line)
		}
	}
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0], `"principal_id":"reader"`)
}

func TestLoadPrincipals_WarnsForLegacyBootstrapAdmin(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	buf := captureLogs(t)

	cfg := testConfig(t)
	cfg.AdminPasswordHash = string(legacy)

	_, err = loadPrincipals(cfg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "legacy scheme")
	assert.Contains(t, buf.String(), `"principal_id":"admin"`)
}

func TestLoadPrincipals_ModernVerifiersAreQuiet(t *testing.T) {
	buf := captureLogs(t)

	_, err := loadPrincipals(testConfig(t))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "legacy scheme")
}

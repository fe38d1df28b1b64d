package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Teller Demo Bank", cfg.Bank.Name)
	assert.Equal(t, "₹", cfg.Bank.CurrencySymbol)
	assert.Equal(t, ":8085", cfg.Server.Listen)
	assert.Equal(t, 5, cfg.Statement.Transactions)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teller.yaml")

	cfg := Default()
	cfg.Bank.Name = "Test Bank"
	cfg.Logging.Level = "debug"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teller.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bank: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

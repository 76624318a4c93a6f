package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Rabscootle/internal/recorder"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestConfig(t *testing.T, uris []string) string {
	t.Helper()
	dir := t.TempDir()
	images := filepath.Join(dir, "pepes.json")
	data, err := json.Marshal(uris)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(images, data, 0o644))

	cfg := filepath.Join(dir, "config.yaml")
	body := "market:\n  source: mock\nlibrary:\n  images_path: " + images + "\n"
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))
	return cfg
}

func TestCoinsCmd(t *testing.T) {
	out, err := run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "coins", "plkdt")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "dotusd")
	assert.Contains(t, lines[0], "Polkadot")
}

func TestPepeCmdSeeded(t *testing.T) {
	uris := []string{"a.gif", "b.gif", "c.gif", "d.gif", "e.gif", "f.gif", "g.gif", "h.gif", "i.gif", "j.gif"}
	cfg := writeTestConfig(t, uris)

	out, err := run(t, "-c", cfg, "pepe", "hello")
	require.NoError(t, err)
	// "hello" hashes to index 2 of 10.
	assert.Equal(t, "c.gif\n", out)

	out, err = run(t, "-c", cfg, "pepe")
	require.NoError(t, err)
	assert.Contains(t, uris, strings.TrimSpace(out))
}

func TestPepeCmdEmptyLibrary(t *testing.T) {
	cfg := writeTestConfig(t, []string{})
	_, err := run(t, "-c", cfg, "pepe", "hello")
	assert.ErrorContains(t, err, "empty")
}

func TestChartCmdMock(t *testing.T) {
	cfg := writeTestConfig(t, nil)
	out := filepath.Join(t.TempDir(), "btc.png")

	stdout, err := run(t, "-c", cfg, "chart", "BTCUSD", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Bitcoin")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestServeRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	cfg := writeTestConfig(t, nil)
	_, err := run(t, "-c", cfg, "serve")
	assert.ErrorContains(t, err, "bot_token")
}

func TestStatsCmd(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bot.db")
	rec, err := recorder.NewSQLiteRecorder(dbPath)
	require.NoError(t, err)
	for i, cmd := range []string{"pepe", "crypto", "pepe"} {
		require.NoError(t, rec.RecordInteraction(&recorder.InteractionEvent{ID: string(rune('a' + i)), Command: cmd}))
	}
	require.NoError(t, rec.Close())

	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("database:\n  sqlite_path: "+dbPath+"\n"), 0o644))
	t.Setenv("SQLITE_PATH", "")

	out, err := run(t, "-c", cfg, "stats")
	require.NoError(t, err)
	assert.Equal(t, "crypto     1\npepe       2\n", out)
}

package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoins(t *testing.T) {
	coins := Coins()
	require.Len(t, coins, 67)
	assert.Equal(t, "Bitcoin", coins[0].Name)
	assert.Equal(t, "btcusd", coins[0].Value)

	seen := make(map[string]bool)
	for _, c := range coins {
		assert.False(t, seen[c.Value], "duplicate value %s", c.Value)
		seen[c.Value] = true
	}

	coins[0].Name = "mutated"
	assert.Equal(t, "Bitcoin", Coins()[0].Name, "Coins returns a copy")

	c, ok := FindCoin("etcusd")
	require.True(t, ok)
	assert.Equal(t, "Ethereum Classic", c.Name)
	_, ok = FindCoin("nope")
	assert.False(t, ok)
}

func TestCamelize(t *testing.T) {
	tests := map[string]string{
		"sad-pepe":      "sadPepe",
		"sad_pepe":      "sadPepe",
		"Sad pepe face": "sadPepeFace",
		"pepe-hands-up": "pepeHands-Up",
		"monkaS":        "monkaS",
		"PepeLaugh":     "pepeLaugh",
		"feels bad man": "feelsBadMan",
		"":              "",
		"ok_ok_ok":      "okOk_ok",
		"pepe 2":        "pepe2",
	}
	for in, want := range tests {
		assert.Equal(t, want, Camelize(in), "Camelize(%q)", in)
	}
}

func TestDisplayName(t *testing.T) {
	name, ok := DisplayName("https://cdn.example/assets/emoji/123-sad_pepe.png")
	require.True(t, ok)
	assert.Equal(t, "[123] sadPepe", name)

	name, ok = DisplayName("https://cdn.example/assets/emoji/pepe-laugh.gif")
	require.True(t, ok)
	assert.Equal(t, "pepeLaugh", name)

	_, ok = DisplayName("https://cdn.example/other/pepe.png")
	assert.False(t, ok)

	long := "https://cdn.example/assets/emoji/7_" + strings.Repeat("a", 150) + ".png"
	name, ok = DisplayName(long)
	require.True(t, ok)
	assert.Len(t, []rune(name), 100)
	assert.True(t, strings.HasPrefix(name, "[7] "))
}

func TestLoadImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pepes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		"https://cdn.example/assets/emoji/1-happy.png",
		"https://cdn.example/assets/emoji/2_sad.gif",
		"https://cdn.example/misc/unnamed.png",
		"https://cdn.example/assets/emoji/1-happy.png"
	]`), 0o644))

	lib, err := LoadImages(path)
	require.NoError(t, err)
	assert.Equal(t, 4, lib.Len())
	require.Len(t, lib.Entries, 2)
	assert.Equal(t, "[1] happy", lib.Entries[0].Name)
	assert.Equal(t, "[2] sad", lib.Entries[1].Name)

	c, ok := lib.Find("https://cdn.example/assets/emoji/2_sad.gif")
	require.True(t, ok)
	assert.Equal(t, "[2] sad", c.Name)
	_, ok = lib.Find("https://cdn.example/misc/unnamed.png")
	assert.False(t, ok)

	_, err = LoadImages(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))
	_, err = LoadImages(path)
	assert.Error(t, err)
}

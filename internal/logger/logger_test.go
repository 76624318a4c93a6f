package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestNewWithWriter_Prefix(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)
	log.SetLevel(log.InfoLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "crypto")
	l.Infof("fetched %s", "btcusd")
	assert.Contains(t, buf.String(), "crypto")
	assert.Contains(t, buf.String(), "fetched btcusd")
}

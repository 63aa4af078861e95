//go:build !js

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestOutput(t *testing.T) {
	assert.Equal(t, os.Stderr, Output(""))

	path := filepath.Join(t.TempDir(), "brigid.log")
	w, ok := Output(path).(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, path, w.Filename)
}

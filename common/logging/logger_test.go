package logging

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	assert.NoError(t, Setup("-", false, false, ""))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	assert.NoError(t, Setup("", false, true, "debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, Setup("-", false, false, "chatty"))
}

func TestSetupWritesLogFile(t *testing.T) {
	defer func() {
		_ = Setup("-", false, false, "info")
	}()
	dir := t.TempDir()

	assert.NoError(t, Setup(dir, false, true, "info"))
	logrus.Info("hello from the asset repo")

	matches, err := filepath.Glob(filepath.Join(dir, logFileName+".*"))
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSetupReplacesFileHook(t *testing.T) {
	defer func() {
		_ = Setup("-", false, false, "info")
	}()

	assert.NoError(t, Setup(t.TempDir(), false, false, "info"))
	assert.NoError(t, Setup(t.TempDir(), false, false, "info"))
	assert.Len(t, logrus.StandardLogger().Hooks[logrus.InfoLevel], 1)
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/schedule"
	"github.com/harperreed/touchbase/store"
)

func runImport(t *testing.T, e *schedule.Engine, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	st := store.New(store.NewMemory(), log.New(io.Discard))
	err := ImportCommand(context.Background(), e, st, log.New(io.Discard), &out, args)
	return out.String(), err
}

func TestImportStatus(t *testing.T) {
	e, _, _ := setupTestCLI(t)

	out, err := runImport(t, e, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Google Import Status")
	assert.Contains(t, out, "Calendar:  last sync never")
}

func TestImportRequiresSubcommand(t *testing.T) {
	e, _, _ := setupTestCLI(t)

	_, err := runImport(t, e)
	assert.Error(t, err)

	_, err = runImport(t, e, "fax")
	assert.Error(t, err)
}

func TestImportUnknownMethod(t *testing.T) {
	e, _, _ := setupTestCLI(t)

	_, err := runImport(t, e, "calendar", "--method", "Carrier Pigeon")
	assert.True(t, errors.Is(err, schedule.ErrMethodNotFound))
}

func TestImportWithoutToken(t *testing.T) {
	e, _, _ := setupTestCLI(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := runImport(t, e, "gmail", "--token", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "touchbase import auth")

	_, err = runImport(t, e, "contacts", "--token", missing)
	assert.Error(t, err)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/fire-protocols/internal/export"
)

func TestHistoryCommands(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "История пуста")

	in := env.writeInput(t, "roof.json", roofInput)
	_, err = env.run(t, "generate", "--in", in)
	require.NoError(t, err)

	out, err = env.run(t, "history", "customers")
	require.NoError(t, err)
	assert.Equal(t, "ООО \"Ромашка\"\n", out)

	xlsx := filepath.Join(env.workDir, "history.xlsx")
	out, err = env.run(t, "history", "export", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 entries")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(export.HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	out, err = env.run(t, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "История очищена")

	out, err = env.run(t, "history", "customers")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHistoryExport_MissingOutFlag(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "history", "export")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "out" not set`)
}

func TestHistoryList_CorruptFileReadsAsEmpty(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.workDir, "history.json"), []byte("{not json"), 0o644))

	out, err := env.run(t, "history", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "История пуста")
}

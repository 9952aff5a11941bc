package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/planner/internal/adapters/jsonfile"
)

func TestChecker_EmptyDataDir(t *testing.T) {
	checker := jsonfile.NewChecker(t.TempDir())

	assert.Equal(t, "json", checker.Backend())
	assert.NoError(t, checker.CheckIntegrity(context.Background()))
}

func TestChecker_StaleTempFile(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	repo := jsonfile.NewTaskRepository(dir)
	require.NoError(t, repo.Save(ctx, "alpha", nil))

	checker := jsonfile.NewChecker(dir)
	require.NoError(t, checker.CheckIntegrity(ctx))

	stale := filepath.Join(dir, "projects", ".alpha.json.123.tmp")
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0644))

	err := checker.CheckIntegrity(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".alpha.json.123.tmp")
}

func TestChecker_ProjectsIsAFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects"), []byte("x"), 0644))

	assert.Error(t, jsonfile.NewChecker(dir).CheckIntegrity(context.Background()))
}

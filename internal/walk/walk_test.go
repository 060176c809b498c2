package walk_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestWalkVisitsEveryFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":        "package a\n",
		"sub/b.go":    "package b\n",
		"sub/c.txt":   "hello\n",
		"sub/sub2/d":  "x\n",
	})

	var mu sync.Mutex
	var got []string
	err := walk.Walk(context.Background(), root, walk.Options{}, func(_ context.Context, path string, info os.FileInfo, sib *sibling.Snapshot) error {
		mu.Lock()
		defer mu.Unlock()
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		got = append(got, rel)
		assert.False(t, info.IsDir())
		assert.NotNil(t, sib)
		return nil
	})
	require.NoError(t, err)

	sort.Strings(got)
	assert.Equal(t, []string{"a.go", "sub/b.go", "sub/c.txt", "sub/sub2/d"}, got)
}

func TestWalkHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.go":        "package a\n",
		"vendor/skip.go": "package b\n",
	})

	excl := regexp.MustCompile(`vendor`)
	var got []string
	err := walk.Walk(context.Background(), root, walk.Options{Excludes: excl}, func(_ context.Context, path string, _ os.FileInfo, _ *sibling.Snapshot) error {
		rel, _ := filepath.Rel(root, path)
		got = append(got, rel)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.go"}, got)
}

func TestWalkPropagatesVisitError(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package a\n"})

	wantErr := errors.New("boom")
	err := walk.Walk(context.Background(), root, walk.Options{}, func(context.Context, string, os.FileInfo, *sibling.Snapshot) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestWalkSingleWorkerStillVisitsAll(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/1.go": "package a\n",
		"b/2.go": "package b\n",
	})

	var mu sync.Mutex
	count := 0
	err := walk.Walk(context.Background(), root, walk.Options{Workers: 1}, func(context.Context, string, os.FileInfo, *sibling.Snapshot) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

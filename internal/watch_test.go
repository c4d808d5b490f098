package internal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineWatching(t *testing.T) {
	engine := newTestEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("a = 1;"), 0o644))

	var (
		mu      sync.Mutex
		results []Result
	)
	report := func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, res)
	}

	require.NoError(t, engine.StartWatching([]string{path}, report))
	assert.Error(t, engine.StartWatching([]string{path}, report), "already watching")

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("a = ;"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, res := range results {
			if !res.Matched {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, engine.StopWatching())
	assert.NoError(t, engine.StopWatching())

	mu.Lock()
	defer mu.Unlock()
	for _, res := range results {
		assert.Equal(t, path, res.Filename)
	}
}

func TestEngineWatchingRestart(t *testing.T) {
	engine := newTestEngine(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("a = 1;"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("b = 2;"), 0o644))

	var (
		mu      sync.Mutex
		results []Result
	)
	collect := func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, res)
	}

	require.NoError(t, engine.StartWatching([]string{first}, func(Result) {}))
	require.NoError(t, os.WriteFile(first, []byte("a = 3;"), 0o644))
	require.NoError(t, engine.StopWatching())

	require.NoError(t, engine.StartWatching([]string{second}, collect))
	require.NoError(t, os.WriteFile(second, []byte("b = 4;"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) > 0
	}, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, engine.StopWatching())

	mu.Lock()
	defer mu.Unlock()
	for _, res := range results {
		assert.Equal(t, second, res.Filename)
	}
}

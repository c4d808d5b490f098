package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/lifted/internal"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Run(path string) (internal.Result, error) {
	args := m.Called(path)
	return args.Get(0).(internal.Result), args.Error(1)
}

func (m *mockEngine) RunSource(source []byte) internal.Result {
	args := m.Called(source)
	return args.Get(0).(internal.Result)
}

func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := internal.Result{Filename: "input.txt", Rule: "doc", Matched: true, Value: "x"}
	engine := new(mockEngine)
	engine.On("Run", "input.txt").Return(expected, nil)

	res, err := ProcessFile(engine, "input.txt")

	assert.NoError(t, err)
	assert.Equal(t, expected, res)
	engine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()
	engine := new(mockEngine)
	engine.On("RunSource", []byte("a")).Return(internal.Result{Rule: "doc", Matched: true, Value: "a"})
	engine.On("RunSource", []byte("b")).Return(internal.Result{Rule: "doc"})

	results := ProcessSources(engine, [][]byte{[]byte("a"), []byte("b")})

	require.Len(t, results, 2)
	assert.True(t, results[0].Matched)
	assert.False(t, results[1].Matched)
	engine.AssertExpectations(t)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := writeFiles(t, dir, "b.txt", "a.txt", "sub/c.txt", "skip.md")

	engine := new(mockEngine)
	for _, path := range paths[:3] {
		engine.On("Run", path).Return(internal.Result{Filename: path, Rule: "doc", Matched: true}, nil)
	}

	var progress bytes.Buffer
	results, err := ProcessFiles(context.Background(), zap.NewNop(), engine, []string{dir}, ProcessFile, Options{
		Extensions: []string{".txt"},
		Workers:    2,
		Progress:   &progress,
	})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, filepath.Join(dir, "a.txt"), results[0].Filename)
	assert.Equal(t, filepath.Join(dir, "b.txt"), results[1].Filename)
	assert.Equal(t, filepath.Join(dir, "sub", "c.txt"), results[2].Filename)
	assert.NotEmpty(t, progress.String())
	engine.AssertExpectations(t)
	engine.AssertNotCalled(t, "Run", paths[3])
}

func TestProcessFilesExplicitFileIgnoresExtensions(t *testing.T) {
	t.Parallel()
	paths := writeFiles(t, t.TempDir(), "notes.md")
	engine := new(mockEngine)
	engine.On("Run", paths[0]).Return(internal.Result{Filename: paths[0], Matched: true}, nil)

	results, err := ProcessFiles(context.Background(), nil, engine, paths, ProcessFile, Options{Extensions: []string{".txt"}})

	require.NoError(t, err)
	require.Len(t, results, 1)
	engine.AssertExpectations(t)
}

func TestProcessFilesProcessorError(t *testing.T) {
	t.Parallel()
	paths := writeFiles(t, t.TempDir(), "ok.txt", "bad.txt")
	errBoom := errors.New("boom")

	processor := func(_ Engine, path string) (internal.Result, error) {
		if filepath.Base(path) == "bad.txt" {
			return internal.Result{}, errBoom
		}
		return internal.Result{Filename: path, Matched: true}, nil
	}

	results, err := ProcessFiles(context.Background(), zap.NewNop(), nil, paths, processor, Options{Workers: 1})

	assert.ErrorIs(t, err, errBoom)
	require.Len(t, results, 1)
	assert.Equal(t, paths[0], results[0].Filename)
}

func TestProcessFilesCancelled(t *testing.T) {
	t.Parallel()
	paths := writeFiles(t, t.TempDir(), "a.txt", "b.txt", "c.txt")
	engine := new(mockEngine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ProcessFiles(ctx, zap.NewNop(), engine, paths, ProcessFile, Options{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	engine.AssertNotCalled(t, "Run", mock.Anything)
}

func TestProcessFilesMissingPath(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := ProcessFiles(context.Background(), zap.NewNop(), new(mockEngine), []string{missing}, ProcessFile, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "error accessing")
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte("Solve x^2 = 4\n\n  Evaluate x^2 at x = 3  \n"), 0o600))

	questions, err := readQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Solve x^2 = 4", "Evaluate x^2 at x = 3"}, questions)
}

func TestReadQuestions_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n \n"), 0o600))

	_, err := readQuestions(path)
	assert.Error(t, err)
}

func TestReadQuestions_Missing(t *testing.T) {
	_, err := readQuestions(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

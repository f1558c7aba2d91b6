package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateCmd_Use(t *testing.T) {
	assert.Equal(t, "annotate [file-id] [row] [column] [explanation]", annotateCmd.Use)
}

func TestAnnotateCmd_SetsAnnotation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"annotate", "file-1", "2", "b", "sensor spike"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Annotated [2, b]")
}

func TestAnnotateCmd_ListFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetArgs([]string{"annotate", "file-1", "0", "a", "baseline note"})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"annotate", "--list", "file-1"})
	defer func() {
		rootCmd.SetArgs(nil)
		annotateList = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[0, a] baseline note")
	assert.Contains(t, buf.String(), "Dana")
}

func TestAnnotateCmd_InvalidRow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"annotate", "file-1", "two", "b", "note"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid row position")
}

func TestAnnotateCmd_EmptyExplanation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"annotate", "file-1", "1", "b", "   "})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

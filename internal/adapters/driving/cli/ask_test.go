package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_ErrorsWithoutService(t *testing.T) {
	oldService := answerService
	answerService = nil
	defer func() {
		answerService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "what is the warranty?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provider")
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what is the warranty?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "The warranty lasts two years.")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "report.pdf, page 3")
}

func TestAskCmd_PassesFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock, ok := answerService.(*mockAnswerService)
	require.True(t, ok)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "question", "--doc", "doc-1", "--doc", "doc-2", "--top-k", "7"})
	defer func() {
		rootCmd.SetArgs(nil)
		askDocs = nil
		askTopK = 0
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "question", mock.gotQuestion)
	assert.Equal(t, []string{"doc-1", "doc-2"}, mock.gotDocIDs)
	assert.Equal(t, 7, mock.gotTopK)
}

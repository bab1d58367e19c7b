package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

func TestUploadCmd_Use(t *testing.T) {
	assert.Equal(t, "upload [file]", uploadCmd.Use)
}

func TestUploadCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestUploadCmd_ErrorsWhenIngestUnavailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestErr = errors.New("embedding provider not configured")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", "file.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestUploadCmd_ExecutesWithFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 fake"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Uploaded report.pdf")
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "Chunks: 12")
}

func TestUploadCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", filepath.Join(t.TempDir(), "nope.pdf")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *domain.PageRange
		wantErr bool
	}{
		{name: "empty means whole document", input: "", want: nil},
		{name: "single page", input: "3", want: &domain.PageRange{Start: 3, End: 3}},
		{name: "range", input: "2-5", want: &domain.PageRange{Start: 2, End: 5}},
		{name: "range with spaces", input: "2 - 5", want: &domain.PageRange{Start: 2, End: 5}},
		{name: "colon range", input: "2:5", want: &domain.PageRange{Start: 2, End: 5}},
		{name: "zero page", input: "0", want: &domain.PageRange{Start: 0, End: 0}},
		{name: "negative start", input: "-1", wantErr: true},
		{name: "end before start", input: "5-2", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "garbage end", input: "1-x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePageRange(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

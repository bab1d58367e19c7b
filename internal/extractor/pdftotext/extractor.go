// Package pdftotext extracts per-page plain text from PDF bytes using the
// poppler pdftotext tool.
package pdftotext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

var pdfMagic = []byte("%PDF")

// Extractor converts PDF bytes into ordered pages of plain text.
// Page numbers are 0-based; when a range is supplied they are absolute
// positions within the document, not positions within the range.
type Extractor struct {
	runner driven.CommandRunner
}

// execRunner runs commands through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// New creates an extractor backed by the pdftotext binary. It fails with
// ErrPDFToolNotFound if the tool is not installed.
func New() (*Extractor, error) {
	if err := CheckAvailable(); err != nil {
		return nil, err
	}
	return &Extractor{runner: execRunner{}}, nil
}

// NewWithRunner creates an extractor with a custom command runner.
// Used in tests to avoid requiring pdftotext.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install guidance for the
// pdftotext dependency.
func InstallInstructions() string {
	return `pdftotext is required for PDF extraction.

Install it with:
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}

// Extract runs pdftotext over the raw bytes and returns one entry per
// page in document order. pdftotext separates pages with form feeds.
func (e *Extractor) Extract(ctx context.Context, raw []byte, pages *domain.PageRange) ([]domain.Page, error) {
	if !bytes.HasPrefix(raw, pdfMagic) {
		return nil, fmt.Errorf("input is not a PDF document: %w", domain.ErrExtraction)
	}

	base := 0
	args := []string{"-layout"}
	if pages != nil {
		if pages.Start < 0 || pages.End < pages.Start {
			return nil, fmt.Errorf("invalid page range %d-%d: %w", pages.Start, pages.End, domain.ErrExtraction)
		}
		base = pages.Start
		// pdftotext page numbers are 1-based.
		args = append(args,
			"-f", strconv.Itoa(pages.Start+1),
			"-l", strconv.Itoa(pages.End+1),
		)
	}

	tmp, err := os.CreateTemp("", "docqa-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	out, err := e.runner.Run(ctx, "pdftotext", append(args, tmp.Name(), "-")...)
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %v: %w", err, domain.ErrExtraction)
	}

	extracted := splitPages(string(out), base)
	if len(extracted) == 0 {
		return nil, fmt.Errorf("no pages extracted: %w", domain.ErrExtraction)
	}
	if pages != nil {
		if want := pages.End - pages.Start + 1; len(extracted) < want {
			return nil, fmt.Errorf("page range %d-%d out of bounds, document has %d page(s) from page %d: %w",
				pages.Start, pages.End, len(extracted), base, domain.ErrExtraction)
		}
	}

	return extracted, nil
}

// splitPages breaks pdftotext output on form feeds and numbers the pages
// from base. A trailing form feed does not produce an extra empty page.
func splitPages(out string, base int) []domain.Page {
	parts := strings.Split(out, "\f")
	if n := len(parts); n > 0 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}

	result := make([]domain.Page, 0, len(parts))
	for i, text := range parts {
		result = append(result, domain.Page{
			Number: base + i,
			Text:   text,
		})
	}

	return result
}

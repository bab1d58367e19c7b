package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

var uploadPages string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload and index a PDF document",
	Long: `Extracts text from a PDF, splits it into chunks, embeds each chunk
and stores the result in the vector index so it can be queried with 'docqa ask'.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadPages, "pages", "p", "", "page range to index, e.g. 2-5 or 3 (0-based, inclusive)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if ingestErr != nil {
		return ingestErr
	}

	pages, err := parsePageRange(uploadPages)
	if err != nil {
		return err
	}

	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ctx := context.Background()
	doc, count, err := documentService.Upload(ctx, filepath.Base(path), raw, pages)
	if err != nil {
		if doc != nil {
			// Record exists but indexing failed; it shows as unprocessed in listings
			cmd.PrintErrf("Document %s was created but not fully indexed\n", doc.ID)
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s\n", doc.FileName)
	cmd.Printf("  ID:     %s\n", doc.ID)
	cmd.Printf("  Chunks: %d\n", count)
	return nil
}

// parsePageRange parses "N", "START-END" or "START:END" into an
// inclusive 0-based range. An empty string means the whole document.
func parsePageRange(s string) (*domain.PageRange, error) {
	if s == "" {
		return nil, nil
	}

	sep := "-"
	if strings.Contains(s, ":") {
		sep = ":"
	}
	parts := strings.SplitN(s, sep, 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid page range %q", s)
	}

	end := start
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid page range %q", s)
		}
	}

	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid page range %q", s)
	}

	return &domain.PageRange{Start: start, End: end}, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askDocs []string
	askTopK int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Embeds the question, retrieves the most similar chunks from the
vector index and asks the completion provider to answer from that
context. Citations name the source document and page.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVarP(&askDocs, "doc", "d", nil, "restrict the search to a document ID (repeatable)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default 5)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("question answering requires both an embedding and a completion provider (run 'docqa settings')")
	}

	ctx := context.Background()
	answer, err := answerService.Ask(ctx, args[0], askDocs, askTopK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  - %s\n", src)
		}
	}

	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and index dropped PDFs",
	Long: `Watches a directory and uploads every PDF created in it, so files
can be indexed by dropping them into a folder. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watcherService == nil {
		if ingestErr != nil {
			return ingestErr
		}
		return errors.New("watcher not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir := args[0]
	cmd.Printf("Watching %s for PDFs (Ctrl-C to stop)\n", dir)

	err := watcherService.Watch(ctx, dir)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Stopped.")
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/realapps-go/internal/metrics"
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show server runtime statistics",
	Long: `Show server runtime statistics: request timings, storage activity,
and token usage for cost monitoring.

Examples:
  realapps usage`,
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, args []string) error {
	snapshot, err := apiClient.Usage(context.Background())
	if err != nil {
		return fmt.Errorf("get usage: %w", err)
	}

	fmt.Printf("Server Statistics\n")
	fmt.Printf("═══════════════════════════════════════\n\n")
	fmt.Printf("Uptime: %.0fs\n\n", snapshot.UptimeSeconds)

	printOp("Chat completions", snapshot.Chat)
	printOp("HTTP requests", snapshot.HTTPRequest)
	printOp("Storage reads", snapshot.StorageRead)
	printOp("Storage writes", snapshot.StorageWrite)
	return nil
}

func printOp(label string, op *metrics.OperationSnapshot) {
	if op == nil {
		return
	}
	fmt.Printf("%s: %d (avg %.1fms, min %dms, max %dms)\n",
		label, op.Count, op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
	if op.TotalInputTokens != nil && op.TotalOutputTokens != nil {
		fmt.Printf("  Tokens: %d in / %d out\n", *op.TotalInputTokens, *op.TotalOutputTokens)
	}
}

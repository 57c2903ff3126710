package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var historyForce bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune chat history",
	Long: `Inspect and prune the chat history stored for your user.

Subcommands:
  list    List conversations, newest first (default)
  show    Print one conversation as JSON
  delete  Delete one conversation
  clear   Delete all conversations

Examples:
  realapps history
  realapps history show Math_8_1756380000
  realapps history delete Math_8_1756380000
  realapps history clear --force`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Print one conversation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "Delete one conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversations",
	RunE:  runHistoryClear,
}

func init() {
	historyClearCmd.Flags().BoolVarP(&historyForce, "force", "f", false, "skip confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	conversations, err := apiClient.History(context.Background())
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(conversations) == 0 {
		fmt.Println("No conversations found.")
		return nil
	}

	fmt.Printf("Conversations (%d):\n\n", len(conversations))
	for _, c := range conversations {
		id, _ := c["conversation_id"].(string)
		subject, _ := c["subject"].(string)
		fmt.Printf("- %s", id)
		if subject != "" {
			fmt.Printf(" [%s]", subject)
		}
		if ts, ok := c["timestamp"].(string); ok && ts != "" {
			fmt.Printf(" (%s)", ts)
		}
		fmt.Println()
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	conversation, err := apiClient.Conversation(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get conversation: %w", err)
	}

	raw, err := json.MarshalIndent(conversation, "", "  ")
	if err != nil {
		return fmt.Errorf("format conversation: %w", err)
	}
	fmt.Println(string(raw))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := apiClient.DeleteConversation(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !historyForce {
		fmt.Print("Delete ALL chat history for this user? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := apiClient.ClearHistory(context.Background()); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Println("All chat history cleared.")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	keysAddName        string
	keysAddProvider    string
	keysAddKey         string
	keysAddCreditLimit float64
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage stored API keys",
	Long: `Manage the API keys stored for your user.

Subcommands:
  list    List stored keys (default)
  add     Store a key for a provider
  delete  Delete a stored key

Examples:
  realapps keys
  realapps keys add --provider OpenRouter
  realapps keys add --provider Anthropic --name work --credit-limit 25
  realapps keys delete OpenRouter`,
	RunE: runKeysList,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys",
	RunE:  runKeysList,
}

var keysAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store an API key",
	RunE:  runKeysAdd,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Delete a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysDelete,
}

func init() {
	keysAddCmd.Flags().StringVar(&keysAddProvider, "provider", "", "provider name (required)")
	keysAddCmd.Flags().StringVar(&keysAddName, "name", "default", "key name")
	keysAddCmd.Flags().StringVar(&keysAddKey, "key", "", "the API key (prompted when omitted)")
	keysAddCmd.Flags().Float64Var(&keysAddCreditLimit, "credit-limit", 0, "optional credit limit")

	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysDeleteCmd)
}

func runKeysList(cmd *cobra.Command, args []string) error {
	keys, err := apiClient.Keys(context.Background())
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}

	if len(keys) == 0 {
		fmt.Println("No API keys stored.")
		return nil
	}

	fmt.Printf("API keys (%d):\n\n", len(keys))
	for _, k := range keys {
		fmt.Printf("- %s (provider: %s, name: %s)\n", k.UniqueKey, k.Provider, k.KeyName)
		if verbose {
			if k.CreditLimit != nil {
				fmt.Printf("  Credit limit: %v\n", k.CreditLimit)
			}
			if k.UpdatedAt != nil {
				fmt.Printf("  Updated: %v\n", k.UpdatedAt)
			}
		}
	}
	return nil
}

func runKeysAdd(cmd *cobra.Command, args []string) error {
	if keysAddProvider == "" {
		return fmt.Errorf("--provider is required")
	}

	apiKey := keysAddKey
	if apiKey == "" {
		// Read the secret without echoing it.
		fmt.Fprintf(os.Stderr, "API key for %s: ", keysAddProvider)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read api key: %w", err)
		}
		apiKey = strings.TrimSpace(string(raw))
	}
	if apiKey == "" {
		return fmt.Errorf("api key must not be empty")
	}

	var creditLimit *float64
	if cmd.Flags().Changed("credit-limit") {
		creditLimit = &keysAddCreditLimit
	}

	result, err := apiClient.SaveKey(context.Background(), keysAddName, keysAddProvider, apiKey, creditLimit)
	if err != nil {
		return fmt.Errorf("save key: %w", err)
	}

	fmt.Printf("Saved %s\n", result.UniqueKey)
	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	if err := apiClient.DeleteKey(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

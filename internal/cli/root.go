// Package cli provides the command-line interface for realapps.
package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/realapps-go/internal/client"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	serverURL string
	cliUserID string

	// API client, created before any command that talks to the server.
	apiClient *client.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "realapps",
	Short: "Real Life Applications backend and admin CLI",
	Long: `Realapps is the backend for the Real Life Applications study app:
a subject catalog, an LLM chat proxy, and per-user storage for API keys
and chat transcripts.

The CLI runs the server (realapps serve) and administers a running
instance: browse the catalog, manage stored API keys, and inspect or
prune chat history.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// serve talks to no server; version and help need nothing.
		if cmd.Name() == "serve" || cmd.Name() == "version" || cmd.Name() == "help" {
			return
		}
		apiClient = client.New(serverURL, resolveUserID())
	},
}

// resolveUserID picks the user identity sent with admin requests.
func resolveUserID() string {
	if cliUserID != "" {
		return cliUserID
	}
	return os.Getenv("REALAPPS_USER_ID")
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (default $REALAPPS_SERVER_URL or http://localhost:5001)")
	rootCmd.PersistentFlags().StringVar(&cliUserID, "user", "", "user ID sent as X-User-ID (default $REALAPPS_USER_ID)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(usageCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

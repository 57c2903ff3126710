package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects [subject]",
	Short: "List subjects or show a subject's real-life applications",
	Long: `List the available subjects, or show the application examples for one.

Examples:
  realapps subjects
  realapps subjects Math
  realapps subjects "Environmental Science"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubjects,
}

func runSubjects(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 {
		subjects, err := apiClient.Subjects(ctx)
		if err != nil {
			return fmt.Errorf("list subjects: %w", err)
		}
		fmt.Printf("Subjects (%d):\n\n", len(subjects))
		for _, s := range subjects {
			fmt.Printf("- %s\n", s)
		}
		return nil
	}

	subject := args[0]
	apps, err := apiClient.Applications(ctx, subject)
	if err != nil {
		return fmt.Errorf("get applications: %w", err)
	}

	fmt.Printf("%s:\n\n", subject)
	for i, app := range apps {
		fmt.Printf("%d. %s\n", i+1, app)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath  string
	jsonOutput  bool
	metricsAddr string
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "edumentor",
		Short: "EduMentor data layer operator tool",
		Long: `edumentor talks to the EduMentor database: it creates the schema, checks
connectivity, registers and logs in users, and runs the lookups the web
application uses.

Configuration comes from EDUMENTOR_* environment variables and an optional
properties file (--config or EDUMENTOR_CONFIG_FILE). Environment variables
win over the file.

With --metrics-addr the store metrics are served at /metrics until the
command returns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("EDUMENTOR_CONFIG_FILE"), "Properties file with the connection settings")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090) while the command runs")

	root.AddCommand(
		newMigrateCmd(opts),
		newPingCmd(opts),
		newSignupCmd(opts),
		newLoginCmd(opts),
		newUsersCmd(opts),
		newPostsCmd(opts),
		newQuestionsCmd(opts),
		newReviewsCmd(opts),
		newMessagesCmd(opts),
	)
	return root
}

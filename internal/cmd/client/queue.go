package client

import (
	"net/url"

	"github.com/spf13/cobra"
)

// NewQueueCommand constructs the `queue` command group and subcommands.
func NewQueueCommand() *cobra.Command {
	queueCmd := &cobra.Command{
		Use:     "queue",
		Aliases: []string{"q"},
		Short:   "Queue operations (list, summary)",
	}

	queueCmd.AddCommand(
		newQueueListCommand(),
		newQueueSummaryCommand(),
	)
	return queueCmd
}

// newQueueListCommand constructs the `queue list` subcommand.
func newQueueListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all queue names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return getJSON(cmd.OutOrStdout(), "/api/queues", nil)
		},
	}
}

// newQueueSummaryCommand constructs the `queue summary` subcommand.
func newQueueSummaryCommand() *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show queue depths, store-wide or for one queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			query := url.Values{}
			if name != "" {
				query.Set("queue_name", name)
			}
			return getJSON(cmd.OutOrStdout(), "/api/summary", query)
		},
	}
	summaryCmd.Flags().String("name", "", "Queue name (all queues if omitted)")
	return summaryCmd
}

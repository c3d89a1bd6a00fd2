package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// NewMessageCommand constructs the `message` command group and subcommands.
func NewMessageCommand() *cobra.Command {
	messageCmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"msg"},
		Short:   "Message operations (create, peek, take, lease, ack, release)",
		Long: `Message operations against a queue.

Retrieval actions:
  peek     Inspect the first eligible message without changing it
  take     Remove and return the first eligible message
  lease    Claim a message for a duration; others cannot see it meanwhile
  ack      Confirm processing of a leased message, removing it
  release  Clear a lease, making the message available again`,
	}

	messageCmd.AddCommand(newMessageCreateCommand())
	for _, action := range []string{"peek", "take", "lease", "ack", "release"} {
		messageCmd.AddCommand(newMessageSelectCommand(action))
	}
	return messageCmd
}

// newMessageCreateCommand constructs the `message create` subcommand.
func newMessageCreateCommand() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a message in a queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			queueName, _ := cmd.Flags().GetString("queue")
			content, _ := cmd.Flags().GetString("content")
			cid, _ := cmd.Flags().GetString("correlation-id")
			expiry, _ := cmd.Flags().GetUint64("expiry-seconds")

			body := map[string]any{"content": content}
			if cid != "" {
				body["correlation_id"] = cid
			}
			if cmd.Flags().Changed("expiry-seconds") {
				body["expiry_seconds"] = expiry
			}
			b, err := json.Marshal(body)
			if err != nil {
				return err
			}
			resp, err := http.Post(
				apiURL()+"/api/messages/"+url.PathEscape(queueName),
				"application/json",
				bytes.NewReader(b),
			)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			out, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "status:", resp.Status)
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	createCmd.Flags().StringP("queue", "q", "", "Queue name")
	createCmd.Flags().String("content", "", "Message content")
	createCmd.Flags().String("correlation-id", "", "Correlation id (uuid)")
	createCmd.Flags().Uint64("expiry-seconds", 0, "Seconds until the message expires")
	_ = createCmd.MarkFlagRequired("queue")
	return createCmd
}

// newMessageSelectCommand constructs one retrieval subcommand per action.
func newMessageSelectCommand(action string) *cobra.Command {
	selectCmd := &cobra.Command{
		Use:   action,
		Short: fmt.Sprintf("Run the %s action against a queue", action),
		RunE: func(cmd *cobra.Command, _ []string) error {
			queueName, _ := cmd.Flags().GetString("queue")
			id, _ := cmd.Flags().GetString("id")
			cid, _ := cmd.Flags().GetString("correlation-id")
			leaseSeconds, _ := cmd.Flags().GetUint64("lease-seconds")
			after, _ := cmd.Flags().GetUint64("after")

			query := url.Values{}
			query.Set("action", action)
			if id != "" {
				query.Set("id", id)
			}
			if cid != "" {
				query.Set("correlation_id", cid)
			}
			if cmd.Flags().Changed("lease-seconds") {
				query.Set("lease_seconds", fmt.Sprintf("%d", leaseSeconds))
			}
			if cmd.Flags().Changed("after") {
				query.Set("after", fmt.Sprintf("%d", after))
			}
			return getJSON(cmd.OutOrStdout(), "/api/messages/"+url.PathEscape(queueName), query)
		},
	}
	selectCmd.Flags().StringP("queue", "q", "", "Queue name")
	selectCmd.Flags().String("id", "", "Message id filter")
	selectCmd.Flags().String("correlation-id", "", "Correlation id filter")
	selectCmd.Flags().Uint64("lease-seconds", 0, "Lease duration in seconds")
	selectCmd.Flags().Uint64("after", 0, "Only positions greater than this")
	_ = selectCmd.MarkFlagRequired("queue")
	return selectCmd
}

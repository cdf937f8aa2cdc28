package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitviz/go-events/publisher"
)

func newPublishCmd(configPath *string) *cobra.Command {
	var (
		eventType string
		dataJSON  string
		orgID     string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a single event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data map[string]any
			if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
				return fmt.Errorf("--data must be a JSON object: %w", err)
			}

			p, log, err := buildPublisher(*configPath)
			if err != nil {
				return err
			}
			defer p.Close()
			defer func() { _ = log.Sync() }()

			ok, err := p.Publish(cmd.Context(), eventType, data, publisher.WithOrgID(orgID))
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("event was not published (transport unreachable)")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published %s for organization %s\n", eventType, orgID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventType, "type", "t", "", "event type, e.g. workout.created")
	cmd.Flags().StringVarP(&dataJSON, "data", "d", "{}", "event payload as a JSON object")
	cmd.Flags().StringVarP(&orgID, "org", "o", "", "organization id")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

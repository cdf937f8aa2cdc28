package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fitviz/go-events/publisher"
	"github.com/fitviz/go-events/schema"
)

// newVerifyCmd checks the full publish path end to end: connect,
// publish a well-formed test event, close.
func newVerifyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Connect and publish a workout.created test event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			p, log, err := buildPublisher(*configPath)
			if err != nil {
				return err
			}
			defer p.Close()
			defer func() { _ = log.Sync() }()
			fmt.Fprintln(out, "[ok] publisher initialized")

			ok, err := p.Publish(cmd.Context(), "workout.created", map[string]any{
				"workout_id":       "test_123",
				"title":            "Test Workout",
				"description":      "Verification test",
				"duration_minutes": 30,
				"created_by":       "test_user",
			}, publisher.WithOrgID(uuid.NewString()))
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("[fail] could not publish test event")
			}
			fmt.Fprintln(out, "[ok] test event published (workout.created)")

			if err := p.Close(); err != nil {
				return err
			}
			fmt.Fprintln(out, "[ok] connection closed cleanly")
			return nil
		},
	}
}

// newTypesCmd lists the event types the built-in catalog validates.
func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List event types with a validation schema",
		Run: func(cmd *cobra.Command, _ []string) {
			types := schema.NewCatalog(nil).Types()
			sort.Strings(types)
			for _, t := range types {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}

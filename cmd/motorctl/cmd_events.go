package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"motorhub/internal/platform/config"
	"motorhub/internal/platform/kafka/consumer"
	"motorhub/internal/platform/logger"
	"motorhub/pkg/platform/events"
)

func newEventsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the domain event stream",
	}

	var group string
	var fromStart bool
	var eventType string
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print events from $KAFKA_LOOKUP_TOPIC until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			if cfg.Kafka.Brokers == "" {
				return errors.New("KAFKA_BROKERS is not set")
			}
			c, err := consumer.New(consumer.Config{
				Brokers:   cfg.Kafka.Brokers,
				GroupID:   group,
				Topics:    []string{cfg.Kafka.LookupTopic},
				FromStart: fromStart,
			}, logger.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel))
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Run(cmd.Context(), printEvents(cmd, eventType))
		},
	}
	tail.Flags().StringVar(&group, "group", "motorctl-tail", "consumer group")
	tail.Flags().BoolVar(&fromStart, "from-start", false, "read the topic from the beginning")
	tail.Flags().StringVar(&eventType, "type", "", "only print events of this type")
	cmd.AddCommand(tail)

	return cmd
}

// printEvents skips records that are not events rather than stopping.
func printEvents(cmd *cobra.Command, eventType string) consumer.Handler {
	return func(_ context.Context, msg *consumer.Message) error {
		var e events.Event
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping offset %d: %v\n", msg.Offset, err)
			return nil
		}
		if eventType != "" && e.Type != eventType {
			return nil
		}
		return printJSON(cmd.OutOrStdout(), e)
	}
}

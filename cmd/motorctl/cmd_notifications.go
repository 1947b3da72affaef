package main

import (
	"github.com/spf13/cobra"

	"motorhub/internal/notification/models"
	"motorhub/pkg/platform/httputil"
)

func newNotificationsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Read and write the notification log and permission state",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the notification log, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			entries, err := s.app.Notifications.List(s.ctx, s.owner, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), models.LogResponse{Entries: entries, Count: len(entries)})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum entries to print, 0 for all")

	var req models.AppendRequest
	var kind string
	add := &cobra.Command{
		Use:   "add",
		Short: "Append a received or opened notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Kind = models.Kind(kind)
			if err := httputil.PrepareRequest(&req); err != nil {
				return err
			}
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			entry, err := s.app.Notifications.Append(s.ctx, s.owner, req.Entry())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	add.Flags().StringVar(&kind, "kind", string(models.KindReceived), "received or opened")
	add.Flags().StringVar(&req.Title, "title", "", "notification title")
	add.Flags().StringVar(&req.Body, "body", "", "notification body")
	add.Flags().StringToStringVar(&req.Data, "data", nil, "payload key=value pairs")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the notification log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			return s.app.Notifications.Clear(s.ctx, s.owner)
		},
	}

	var record bool
	prompt := &cobra.Command{
		Use:   "prompt",
		Short: "Show whether the permission dialog may be shown, optionally recording that it was",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if record {
				if _, err := s.app.Notifications.RecordPrompt(s.ctx, s.owner); err != nil {
					return err
				}
			}
			p, d, err := s.app.Notifications.PromptDecision(s.ctx, s.owner)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), models.PermissionResponse{Permission: p, Decision: d})
		},
	}
	prompt.Flags().BoolVar(&record, "record", false, "record that the dialog was shown")

	decide := &cobra.Command{
		Use:       "decide granted|denied",
		Short:     "Record the user's answer to the permission dialog",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.PermissionGranted), string(models.PermissionDenied)},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &models.DecisionRequest{Status: models.PermissionStatus(args[0])}
			if err := req.Validate(); err != nil {
				return err
			}
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.app.Notifications.RecordDecision(s.ctx, s.owner, req.Status)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}

	cmd.AddCommand(list, add, clearCmd, prompt, decide)
	return cmd
}

// Command motorctl runs motorhub lookups, payments and the notification log
// in-process, for operators and local testing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"motorhub/internal/app"
	"motorhub/internal/platform/config"
	"motorhub/internal/platform/logger"
	id "motorhub/pkg/domain"
	"motorhub/pkg/requestcontext"
)

// devUserID is the owner used when --user is not given.
const devUserID = "00000000-0000-4000-8000-000000000001"

type options struct {
	user     string
	store    string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "motorctl",
		Short:        "Look up vehicle insurance and challans, and manage the notification log",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.user, "user", devUserID, "owner user ID (UUID)")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "notification store: memory, badger, redis or postgres (default $NOTIFICATION_STORE, else badger)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newInsuranceCmd(opts),
		newChallanCmd(opts),
		newNotificationsCmd(opts),
		newTokenCmd(),
		newUpstreamCmd(),
		newEventsCmd(opts),
	)
	return root
}

// session is one command's worth of wiring.
type session struct {
	app   *app.App
	owner id.UserID
	ctx   context.Context
}

func (o *options) open(cmd *cobra.Command) (*session, error) {
	owner, err := id.ParseUserID(o.user)
	if err != nil {
		return nil, fmt.Errorf("--user: %w", err)
	}

	cfg := config.FromEnv()
	switch {
	case o.store != "":
		cfg.Notification.Store = o.store
	case os.Getenv("NOTIFICATION_STORE") == "":
		cfg.Notification.Store = config.StoreBadger
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel)
	ctx := requestcontext.WithClient(cmd.Context(), "motorctl", "cli")
	a, err := app.New(ctx, cfg, log, nil)
	if err != nil {
		return nil, err
	}
	return &session{app: a, owner: owner, ctx: ctx}, nil
}

func (s *session) close() {
	_ = s.app.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

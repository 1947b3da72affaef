package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "motorhub/internal/jwt_token"
	"motorhub/internal/platform/config"
	id "motorhub/pkg/domain"
)

type tokenOutput struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue bearer tokens for the motorhub API",
	}

	var userID string
	var ttl time.Duration
	var asJSON bool
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token with $JWT_SIGNING_KEY (dev key when unset)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid := id.NewUserID()
			if userID != "" {
				parsed, err := id.ParseUserID(userID)
				if err != nil {
					return fmt.Errorf("--user-id: %w", err)
				}
				uid = parsed
			}

			cfg := config.FromEnv()
			if ttl <= 0 {
				ttl = cfg.Server.TokenTTL
			}
			svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, ttl)
			svc.SetEnv(cfg.Server.Environment)
			token, err := svc.GenerateAccessToken(cmd.Context(), uid)
			if err != nil {
				return err
			}

			out := tokenOutput{
				Token:     token,
				Type:      "Bearer",
				UserID:    uid.String(),
				ExpiresIn: ttl.String(),
				Usage:     fmt.Sprintf(`curl -H "Authorization: Bearer %s" http://localhost%s/insurance/state`, token, cfg.Server.Addr),
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "User ID:    %s\n", out.UserID)
			fmt.Fprintf(w, "Expires In: %s\n\n", out.ExpiresIn)
			fmt.Fprintf(w, "%s\n", out.Token)
			return nil
		},
	}
	issue.Flags().StringVar(&userID, "user-id", "", "user ID (UUID), generated if empty")
	issue.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default $TOKEN_TTL)")
	issue.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.AddCommand(issue)

	return cmd
}

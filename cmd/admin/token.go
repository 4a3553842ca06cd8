package main

import (
	"fmt"
	"time"

	"github.com/programme-lv/writing/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var userID, username string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for a user (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProd() {
				return fmt.Errorf("refusing to mint tokens in prod")
			}
			token, err := auth.GenerateJWT(userID, username, ttl, []byte(cfg.JwtKey))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id to put in the token (required)")
	cmd.Flags().StringVar(&username, "username", "", "Optional username claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/config"
)

// tokenCmd выпускает JWT для локальной отладки API
func tokenCmd(configPath *string) *cobra.Command {
	var (
		userID string
		admin  bool
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить JWT для пользователя",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			role := "user"
			if admin {
				role = cfg.Auth.AdminRole
			}

			token, err := middleware.IssueToken(cfg.Auth.JWTSecret, id, role, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "ID пользователя (uuid)")
	cmd.Flags().BoolVar(&admin, "admin", false, "выпустить токен администратора")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "время жизни токена")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-seat-reservation/internal/config"
	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
	"github.com/iliyamo/restaurant-seat-reservation/internal/repository"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newStaffAddCmd())
	cmd.AddCommand(newStaffDeactivateCmd())
	return cmd
}

func newStaffAddCmd() *cobra.Command {
	var email, password, role string

	c := &cobra.Command{
		Use:   "add",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			role = strings.ToUpper(strings.TrimSpace(role))
			if role != model.RoleStaff && role != model.RoleManager {
				return fmt.Errorf("role must be %s or %s", model.RoleStaff, model.RoleManager)
			}
			cfg := config.Load()
			ctx := context.Background()
			db, err := openDB(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := repository.NewStaffRepo(db).Create(ctx, email, password, role, cfg.BcryptCost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created staff %q (id=%d, role=%s)\n", strings.ToLower(strings.TrimSpace(email)), id, role)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "login email")
	c.Flags().StringVar(&password, "password", "", "password")
	c.Flags().StringVar(&role, "role", model.RoleStaff, "STAFF or MANAGER")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}

func newStaffDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <email>",
		Short: "Disable a staff account and revoke its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := context.Background()
			db, err := openDB(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer db.Close()

			staff := repository.NewStaffRepo(db)
			s, err := staff.GetByEmail(ctx, args[0])
			if err != nil {
				return fmt.Errorf("find %q: %w", args[0], err)
			}
			if err := staff.SetActive(ctx, s.ID, false); err != nil {
				return err
			}
			if err := repository.NewTokenRepo(db).RevokeAllForStaff(ctx, s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deactivated %s\n", s.Email)
			return nil
		},
	}
}

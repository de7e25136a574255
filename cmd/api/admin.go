package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string

	createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or promote an existing one",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			password := adminPassword
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if adminEmail == "" || password == "" {
				return errors.New("--email and --password (or ADMIN_PASSWORD) are required")
			}

			ctx := c.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.users.EnsureAdmin(ctx, adminEmail, password)
			if err != nil {
				return fmt.Errorf("ensure admin: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "admin %s ready (id %s)\n", user.Email, user.ID)
			return nil
		},
	}
)

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Regenerate due and overdue notifications once",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.notifications.Refresh(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "stored %d notifications\n", count)
		return nil
	},
}

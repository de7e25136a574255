package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Communication tracker API",
	Long:         "Tracks communications with companies, reminds when follow-ups are due and reports on activity.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		reportCmd,
		notifyCmd,
		createAdminCmd,
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

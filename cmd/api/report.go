package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/octobees/commtrack/api/internal/dto"
)

var (
	reportFormat    string
	reportTimeframe string
	reportCompany   string
	reportOutput    string

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Render a communication report to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			var companyID *uuid.UUID
			if raw := strings.TrimSpace(reportCompany); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("invalid --company %q: %w", raw, err)
				}
				companyID = &id
			}

			ctx := c.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var buf bytes.Buffer
			format, err := a.analytics.Report(ctx, &buf, dto.ReportQuery{
				Format:    reportFormat,
				Timeframe: reportTimeframe,
				CompanyID: companyID,
			})
			if err != nil {
				return err
			}

			if reportOutput == "" || reportOutput == "-" {
				_, err = c.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(reportOutput, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			a.logger.Info("report written", "path", reportOutput, "format", format, "bytes", buf.Len())
			return nil
		},
	}
)

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "pdf", "report format (pdf or csv)")
	reportCmd.Flags().StringVarP(&reportTimeframe, "timeframe", "t", "month", "window: week, month, quarter or year")
	reportCmd.Flags().StringVar(&reportCompany, "company", "", "restrict the report to one company id")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "-", "output path, - for stdout")
}

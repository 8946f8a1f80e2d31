package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"ise-marketing/propdesk/internal/config"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/models/dtos"
	"ise-marketing/propdesk/internal/providers"
	"ise-marketing/propdesk/internal/revenue"
	"ise-marketing/propdesk/internal/services"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Fold legacy contact lists and end dates into the current schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			deps, closeFn, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := deps.Services.Migration.MigrateLegacy(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			printMigrationReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Report what would change without writing")
	return cmd
}

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print data-quality counts for the property table",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := deps.Services.Audit.Audit(cmd.Context())
			if err != nil {
				return err
			}
			printAudit(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON export of the old property store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runMigration, _ := cmd.Flags().GetBool("migrate")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open export: %w", err)
			}
			defer f.Close()

			deps, closeFn, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := deps.Services.Migration.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d properties, skipped %d\n", len(report.Imported), len(report.Skipped))
			for _, name := range report.Skipped {
				fmt.Fprintf(out, "  skipped: %s\n", name)
			}

			if !runMigration {
				return nil
			}
			migrated, err := deps.Services.Migration.MigrateLegacy(cmd.Context(), false)
			if err != nil {
				return err
			}
			printMigrationReport(out, migrated)
			return nil
		},
	}
	cmd.Flags().Bool("migrate", false, "Run the legacy migration after importing")
	return cmd
}

func RevenueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Print the projected commission revenue by year",
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, _ := cmd.Flags().GetString("remote")
			asJSON, _ := cmd.Flags().GetBool("json")

			var report *revenue.Report
			if remote != "" {
				if err := logging.Init(config.Load().AppEnv); err != nil {
					return err
				}
				var provider providers.PropertyProvider = providers.NewPropertyAPIProvider(remote)
				logging.Info("Reading properties from remote source", "provider", provider.GetProviderType(), "url", remote)
				svc := services.NewRevenueService(provider, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
				r, err := svc.Report(cmd.Context())
				if err != nil {
					return err
				}
				report = r
			} else {
				deps, closeFn, err := openDeps(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				r, err := deps.Services.Revenue.Report(cmd.Context())
				if err != nil {
					return err
				}
				report = r
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printRevenue(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().String("remote", "", "Base URL of a running server to read properties from")
	cmd.Flags().Bool("json", false, "Print the full report as JSON")
	return cmd
}

func printMigrationReport(w io.Writer, report *dtos.MigrationReport) {
	fmt.Fprintln(w, report.Message)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCONTACTS\tEND DATE MOVED")
	for _, p := range report.MigratedProperties {
		fmt.Fprintf(tw, "%s\t%d\t%t\n", p.Name, p.ContactCount, p.MovedEndDate)
	}
	_ = tw.Flush()
}

func printAudit(w io.Writer, a *dtos.AuditReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total properties:\t%d\n", a.Total)
	fmt.Fprintf(tw, "With contract start date:\t%d\n", a.WithStartDate)
	fmt.Fprintf(tw, "With contract expiration:\t%d\n", a.WithExpiration)
	fmt.Fprintf(tw, "Needing end date migration:\t%d\n", a.NeedingMigration)
	fmt.Fprintf(tw, "With both end date and start date:\t%d\n", a.WithBothDates)
	fmt.Fprintf(tw, "On legacy schema:\t%d\n", a.LegacySchema)
	fmt.Fprintf(tw, "Missing commission:\t%d\n", a.MissingCommission)
	_ = tw.Flush()

	if len(a.UndatedProperties) > 0 {
		fmt.Fprintln(w, "\nNo contract dates (revenue start year assumed):")
		for _, name := range a.UndatedProperties {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
}

func printRevenue(w io.Writer, r *revenue.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "YEAR\tREVENUE\t")
	for i, year := range r.Chart.Years {
		fmt.Fprintf(tw, "%d\t%.2f\t\n", year, r.Chart.Revenues[i])
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nTotal %.2f  Highest %.2f  Average %.2f over %d years\n",
		r.Summary.TotalRevenue, r.Summary.HighestRevenue, r.Summary.AverageRevenue, r.Summary.YearCount)
	fmt.Fprintf(w, "%d of %d properties contribute (%d with a commission)\n",
		len(r.IncludedProperties), r.TotalProperties, r.PropertiesWithCommission)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning [%s] %s: %s\n", warn.Kind, warn.Property, warn.Message)
	}
}

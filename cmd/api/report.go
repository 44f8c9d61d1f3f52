package main

import (
	"context"
	"fmt"
	"io"

	catalogapp "github.com/dejobratic/vestuario/internal/catalog/app"
	"github.com/dejobratic/vestuario/internal/catalog/metrics"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
	"github.com/dejobratic/vestuario/internal/database"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func newReportCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print record counts and grouped totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			meter := otel.GetMeterProvider().Meter(meterName)
			dbMetrics, err := database.NewMetrics(meter)
			if err != nil {
				return err
			}
			catalogMetrics, err := metrics.NewMetrics(meter)
			if err != nil {
				return err
			}

			backend, err := openBackend(cmd.Context(), cfg, logger, dbMetrics)
			if err != nil {
				return err
			}
			defer backend.Close()

			service := catalogapp.NewService(backend.store, backend.idem, logger, catalogMetrics, catalogapp.Options{})
			return printReport(cmd.Context(), cmd.OutOrStdout(), service)
		},
	}
}

func printReport(ctx context.Context, w io.Writer, service *catalogapp.Service) error {
	sections := []struct {
		title string
		load  func(context.Context) ([]readmodel.GroupCount, error)
	}{
		{"Registros", service.EntityCounts},
		{"Roupas por fornecedor", service.GarmentCountBySupplier},
		{"Pedidos por status", service.OrderCountByStatus},
	}

	for _, section := range sections {
		groups, err := section.load(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", section.title, err)
		}
		if err := renderGroups(w, section.title, groups); err != nil {
			return err
		}
	}
	return nil
}

func renderGroups(w io.Writer, title string, groups []readmodel.GroupCount) error {
	fmt.Fprintf(w, "%s\n", title)

	table := tablewriter.NewWriter(w)
	table.Header("Grupo", "Quantidade")
	for _, g := range groups {
		if err := table.Append(g.Key, g.Count); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)
	return err
}

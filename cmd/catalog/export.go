package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/utsavgifts/catalogd/internal/cli"
	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/config"
	"github.com/utsavgifts/catalogd/internal/engine"
	"github.com/utsavgifts/catalogd/internal/images"
	"github.com/utsavgifts/catalogd/internal/model"
	"github.com/utsavgifts/catalogd/internal/pdf"
	"github.com/utsavgifts/catalogd/internal/render"
	"github.com/utsavgifts/catalogd/internal/service"
	"github.com/utsavgifts/catalogd/internal/sheets"
)

type exportFlags struct {
	out         string
	clientName  string
	mode        string
	baseURL     string
	logoURL     string
	names       []string
	categories  []string
	themes      []string
	occasions   []string
	customTypes []string
	minPrice    float64
	maxPrice    float64
	discount    int
}

func exportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a PDF",
		Long: `Export the filtered catalog to a PDF file. The vector mode composes
the document directly; the browser mode prints the running catalog page
with headless Chrome and requires --base-url.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "catalog.pdf", "output file")
	cmd.Flags().StringVar(&flags.clientName, "client", "", "client name for the cover page")
	cmd.Flags().StringVar(&flags.mode, "mode", "vector", "generation mode (vector, browser)")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "running server URL for browser mode")
	cmd.Flags().StringVar(&flags.logoURL, "logo", "", "logo image URL for the cover page")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil, "filter by category")
	cmd.Flags().StringSliceVar(&flags.themes, "theme", nil, "filter by theme")
	cmd.Flags().StringSliceVar(&flags.occasions, "occasion", nil, "filter by occasion")
	cmd.Flags().StringSliceVar(&flags.names, "name", nil, "filter by product name substring")
	cmd.Flags().StringSliceVar(&flags.customTypes, "custom-type", nil, "filter by customisation type")
	cmd.Flags().Float64Var(&flags.minPrice, "min-price", model.DefaultMinPrice, "minimum price")
	cmd.Flags().Float64Var(&flags.maxPrice, "max-price", model.DefaultMaxPrice, "maximum price")
	cmd.Flags().IntVar(&flags.discount, "discount", 0, "discount percentage (max 30)")

	return cmd
}

func (f *exportFlags) criteria() model.Criteria {
	c := model.DefaultCriteria()
	c.Price = model.PriceRange{Min: f.minPrice, Max: f.maxPrice}
	c.Categories = f.categories
	c.Themes = f.themes
	c.Occasions = f.occasions
	c.ProductNames = f.names
	c.CustomTypes = f.customTypes
	return c
}

func runExport(cmd *cobra.Command, flags *exportFlags) error {
	ctx := cmd.Context()
	logger := slog.Default()
	criteria := flags.criteria()
	discount := model.ClampDiscount(flags.discount)

	var data []byte
	switch flags.mode {
	case "browser":
		if flags.baseURL == "" {
			return fmt.Errorf("--base-url is required in browser mode")
		}
		capture := render.NewCapture(flags.baseURL, logger)
		rendered, err := capture.Generate(ctx, service.ExportRequest{
			ClientName: flags.clientName,
			Criteria:   criteria,
			Discount:   discount,
		})
		if err != nil {
			return err
		}
		data = rendered

	case "vector":
		sheetsCfg, err := config.LoadSheetsConfig()
		if err != nil {
			return fmt.Errorf("sheets configuration: %w", err)
		}
		client, err := sheets.NewClient(ctx, *sheetsCfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}

		products, err := client.FetchProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch products: %w", err)
		}
		filtered := engine.New(engine.Options{Logger: logger}).
			Apply(products, criteria, model.DefaultSort())
		if len(filtered) == 0 {
			return common.NewUserError("no products match the selected filters", common.ErrNoProducts)
		}

		bar := progressbar.NewOptions(len(filtered),
			progressbar.OptionSetDescription("Warming product images"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish())
		images.PreloadProgress(ctx, nil, filtered, logger, func() { _ = bar.Add(1) })
		_ = bar.Finish()

		composer := pdf.NewComposer(images.NewFetcher(nil, logger), flags.logoURL, logger)
		data, err = composer.Generate(ctx, service.ExportRequest{
			Products:   filtered,
			ClientName: flags.clientName,
			Criteria:   criteria,
			Discount:   discount,
		})
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown mode %q (expected vector or browser)", flags.mode)
	}

	if err := os.WriteFile(flags.out, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", flags.out, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s (%d bytes)", flags.out, len(data))))
	return nil
}

// Package main provides the CLI entrypoint for the executive command
// center dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anshulguptads/Executive-Command-Center/internal/analytics"
	"github.com/anshulguptads/Executive-Command-Center/internal/config"
	"github.com/anshulguptads/Executive-Command-Center/internal/dashui"
	"github.com/anshulguptads/Executive-Command-Center/internal/dataset"
	"github.com/anshulguptads/Executive-Command-Center/internal/generator"
	"github.com/anshulguptads/Executive-Command-Center/internal/model"
	"github.com/anshulguptads/Executive-Command-Center/internal/store"
)

const (
	defaultPlotHeight = 10
	fallbackWidth     = 80
)

var (
	salesPath   string
	personaPath string

	filterStart      string
	filterEnd        string
	filterRegions    []string
	filterStores     []string
	filterCategories []string
	filterSegments   []string

	noCache    bool
	plotHeight int

	restockFactor float64
	staffingRatio float64
	promoQuantile float64

	exportDir string

	generateDir      string
	generateDays     int
	generateStores   int
	generatePersonas int
	generateSeed     int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ecc",
		Short:         "Executive command center over retail sales and persona datasets",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}
	addCommonFlags(rootCmd)

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&salesPath, "sales", "", "sales operations CSV path")
	cmd.Flags().StringVar(&personaPath, "persona", "", "customer persona CSV path")
	cmd.Flags().StringVar(&filterStart, "start", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&filterEnd, "end", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringSliceVar(&filterRegions, "region", nil, "regions to include (default: all)")
	cmd.Flags().StringSliceVar(&filterStores, "store", nil, "stores to include (default: all)")
	cmd.Flags().StringSliceVar(&filterCategories, "category", nil, "SKU categories to include (default: all)")
	cmd.Flags().StringSliceVar(&filterSegments, "segment", nil, "loyalty segments to include (default: all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the parsed-dataset cache")
	cmd.Flags().IntVar(&plotHeight, "plot-height", defaultPlotHeight, "plot height in rows")
	cmd.Flags().Float64Var(&restockFactor, "restock-factor", 0.6, "restock alert factor on units sold")
	cmd.Flags().Float64Var(&staffingRatio, "staffing-ratio", 50, "footfall per staff alert threshold")
	cmd.Flags().Float64Var(&promoQuantile, "promo-quantile", 0.25, "revenue quantile for promo suggestions")
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the filtered snapshot as plain text",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addCommonFlags(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered views as CSV files",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addCommonFlags(cmd)
	cmd.Flags().StringVar(&exportDir, "out", ".", "output directory for exported CSV files")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic demo datasets",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	cmd.Flags().StringVar(&generateDir, "out", ".", "output directory for generated CSV files")
	cmd.Flags().IntVar(&generateDays, "days", 30, "number of days to generate")
	cmd.Flags().IntVar(&generateStores, "stores", 3, "stores per region")
	cmd.Flags().IntVar(&generatePersonas, "personas", 200, "number of personas")
	cmd.Flags().Int64Var(&generateSeed, "seed", time.Now().UnixNano(), "random seed")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

// session carries everything a command needs after config layering and
// dataset loading.
type session struct {
	sales    []model.SalesRecord
	personas []model.PersonaRecord
	spec     model.FilterSpec
	alerts   analytics.AlertConfig
}

func newSession(cmd *cobra.Command) (*session, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sales", &salesPath, fileCfg.Data.Sales)
	applyStringConfig(cmd, "persona", &personaPath, fileCfg.Data.Persona)
	applyFloatConfig(cmd, "restock-factor", &restockFactor, fileCfg.Alerts.RestockFactor)
	applyFloatConfig(cmd, "staffing-ratio", &staffingRatio, fileCfg.Alerts.StaffingRatio)
	applyFloatConfig(cmd, "promo-quantile", &promoQuantile, fileCfg.Alerts.PromoQuantile)
	applyIntConfig(cmd, "plot-height", &plotHeight, fileCfg.Dashboard.PlotHeight)
	if fileCfg.Dashboard.Cache != nil && !cmd.Flags().Changed("no-cache") {
		noCache = !*fileCfg.Dashboard.Cache
	}

	alerts := analytics.AlertConfig{
		RestockFactor: restockFactor,
		StaffingRatio: staffingRatio,
		PromoQuantile: promoQuantile,
	}
	if err := validateAlertConfig(alerts); err != nil {
		return nil, err
	}

	spec, err := buildFilterSpec()
	if err != nil {
		return nil, err
	}

	if salesPath == "" {
		return nil, fmt.Errorf("no sales dataset configured (use --sales or set [data] sales in %s)", config.DefaultConfigPath())
	}

	sales, personas, err := loadDatasets()
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("sales dataset is empty: %s", salesPath)
	}

	return &session{
		sales:    sales,
		personas: personas,
		spec:     spec,
		alerts:   alerts,
	}, nil
}

func loadDatasets() ([]model.SalesRecord, []model.PersonaRecord, error) {
	var cache *store.Store
	if !noCache {
		st, err := store.Open(config.DefaultCacheDBPath())
		if err != nil {
			logErrf("dataset cache unavailable: %v\n", err)
		} else {
			cache = st
			defer func() {
				if cerr := cache.Close(); cerr != nil {
					logErrf("failed to close cache: %v\n", cerr)
				}
			}()
		}
	}

	sales, err := loadSales(cache, salesPath)
	if err != nil {
		return nil, nil, err
	}

	var personas []model.PersonaRecord
	if personaPath == "" {
		logErrln("no persona dataset configured; persona views will be empty")
	} else {
		personas, err = loadPersonas(cache, personaPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return sales, personas, nil
}

func loadSales(cache *store.Store, path string) ([]model.SalesRecord, error) {
	ctx := context.Background()
	var fp dataset.Fingerprint
	if cache != nil {
		var err error
		fp, err = dataset.FingerprintFile(path)
		if err == nil {
			if rows, hit, gerr := cache.GetSales(ctx, fp); gerr == nil && hit {
				return rows, nil
			}
		}
	}
	rows, stats, err := dataset.LoadSales(path)
	if err != nil {
		return nil, err
	}
	if stats.InvalidDates > 0 {
		logErrf("%d sales rows had invalid dates and are excluded from date-bounded views\n", stats.InvalidDates)
	}
	if cache != nil && fp != (dataset.Fingerprint{}) {
		if perr := cache.PutSales(ctx, fp, rows); perr != nil {
			logErrf("failed to cache sales dataset: %v\n", perr)
		}
	}
	return rows, nil
}

func loadPersonas(cache *store.Store, path string) ([]model.PersonaRecord, error) {
	ctx := context.Background()
	var fp dataset.Fingerprint
	if cache != nil {
		var err error
		fp, err = dataset.FingerprintFile(path)
		if err == nil {
			if rows, hit, gerr := cache.GetPersonas(ctx, fp); gerr == nil && hit {
				return rows, nil
			}
		}
	}
	rows, stats, err := dataset.LoadPersonas(path)
	if err != nil {
		return nil, err
	}
	if stats.InvalidDates > 0 {
		logErrf("%d persona rows had invalid last-visit dates\n", stats.InvalidDates)
	}
	if cache != nil && fp != (dataset.Fingerprint{}) {
		if perr := cache.PutPersonas(ctx, fp, rows); perr != nil {
			logErrf("failed to cache persona dataset: %v\n", perr)
		}
	}
	return rows, nil
}

func buildFilterSpec() (model.FilterSpec, error) {
	start, err := parseDateFlag(filterStart)
	if err != nil {
		return model.FilterSpec{}, fmt.Errorf("invalid --start value: %w", err)
	}
	end, err := parseDateFlag(filterEnd)
	if err != nil {
		return model.FilterSpec{}, fmt.Errorf("invalid --end value: %w", err)
	}
	return model.FilterSpec{
		Start:      start,
		End:        end,
		Regions:    filterRegions,
		Stores:     filterStores,
		Categories: filterCategories,
		Segments:   filterSegments,
	}, nil
}

func parseDateFlag(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func validateAlertConfig(cfg analytics.AlertConfig) error {
	if cfg.RestockFactor < 0 {
		return fmt.Errorf("--restock-factor must be >= 0")
	}
	if cfg.StaffingRatio <= 0 {
		return fmt.Errorf("--staffing-ratio must be > 0")
	}
	if cfg.PromoQuantile < 0 || cfg.PromoQuantile > 1 {
		return fmt.Errorf("--promo-quantile must be between 0 and 1")
	}
	return nil
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	dashModel := dashui.NewModel(sess.sales, sess.personas, dashui.Options{
		Spec:       sess.spec,
		Alerts:     sess.alerts,
		PlotHeight: plotHeight,
		ExportDir:  ".",
	})
	program := tea.NewProgram(dashModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	snap := analytics.BuildSnapshot(sess.sales, sess.personas, sess.spec, sess.alerts)
	width := terminalWidth()
	if err := analytics.RenderReport(cmd.OutOrStdout(), snap, width, plotHeight, false); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	snap := analytics.BuildSnapshot(sess.sales, sess.personas, sess.spec, sess.alerts)

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	salesOut := filepath.Join(exportDir, "filtered_sales.csv")
	if err := writeExport(salesOut, func(f *os.File) error {
		return dataset.WriteSales(f, snap.SalesView)
	}); err != nil {
		return fmt.Errorf("failed to export sales view: %w", err)
	}
	personaOut := filepath.Join(exportDir, "filtered_persona.csv")
	if err := writeExport(personaOut, func(f *os.File) error {
		return dataset.WritePersonas(f, snap.PersonaView)
	}); err != nil {
		return fmt.Errorf("failed to export persona view: %w", err)
	}
	logErrf("Wrote %s (%d rows) and %s (%d rows)\n", salesOut, len(snap.SalesView), personaOut, len(snap.PersonaView))
	return nil
}

func writeExport(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after a failed write.
			_ = cerr
		}
		return err
	}
	return file.Close()
}

func runGenerateCmd(_ *cobra.Command, _ []string) error {
	if generateDays <= 0 || generateStores <= 0 || generatePersonas <= 0 {
		return fmt.Errorf("--days, --stores, and --personas must be > 0")
	}
	if err := os.MkdirAll(generateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	gen := generator.New(generateSeed)
	sales := gen.Sales(generateDays, generateStores)
	personas := gen.Personas(generatePersonas)

	salesOut := filepath.Join(generateDir, "sales_ops.csv")
	if err := writeExport(salesOut, func(f *os.File) error {
		return dataset.WriteSales(f, sales)
	}); err != nil {
		return fmt.Errorf("failed to write generated sales: %w", err)
	}
	personaOut := filepath.Join(generateDir, "persona.csv")
	if err := writeExport(personaOut, func(f *os.File) error {
		return dataset.WritePersonas(f, personas)
	}); err != nil {
		return fmt.Errorf("failed to write generated personas: %w", err)
	}
	logErrf("Wrote %s (%d rows) and %s (%d rows)\n", salesOut, len(sales), personaOut, len(personas))
	return nil
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return `# ecc configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# sales = "/path/to/sales_ops.csv"      # Sales operations dataset
# persona = "/path/to/persona.csv"      # Customer persona dataset

[alerts]
# restock-factor = 0.6                  # Flag when stock < factor * units sold
# staffing-ratio = 50.0                 # Flag when footfall per staff exceeds this
# promo-quantile = 0.25                 # Revenue quantile for promo suggestions

[dashboard]
# plot-height = 10                      # Plot height in rows
# cache = true                          # Cache parsed datasets in SQLite
`
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

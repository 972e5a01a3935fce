package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"readiness/internal/config"
	"readiness/internal/health"
	"readiness/internal/service"
	"readiness/internal/store"
)

// Colors
var (
	goodColor    = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	accentColor  = lipgloss.Color("#7C3AED") // Purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	bandStyles = map[string]lipgloss.Style{
		"Poor":     lipgloss.NewStyle().Bold(true).Foreground(errorColor),
		"Fair":     lipgloss.NewStyle().Bold(true).Foreground(warningColor),
		"Good":     lipgloss.NewStyle().Bold(true).Foreground(goodColor),
		"Optimal":  lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		"Light":    lipgloss.NewStyle().Bold(true).Foreground(mutedColor),
		"Moderate": lipgloss.NewStyle().Bold(true).Foreground(goodColor),
		"High":     lipgloss.NewStyle().Bold(true).Foreground(warningColor),
		"All Out":  lipgloss.NewStyle().Bold(true).Foreground(errorColor),
	}
)

var (
	todayDate string

	trendDays int
	trendEnd  string

	recomputeFrom string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "readiness",
		Short:        "Daily recovery, sleep and strain scoring from health data",
		SilenceUsage: true,
		RunE:         runToday,
	}
	rootCmd.Flags().StringVar(&todayDate, "date", "", "date to report (YYYY-MM-DD, default today)")

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show the daily readiness report",
		RunE:  runToday,
	}
	todayCmd.Flags().StringVar(&todayDate, "date", "", "date to report (YYYY-MM-DD, default today)")

	importCmd := &cobra.Command{
		Use:   "import <export.json>",
		Short: "Import a health export and rescore affected days",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	trendCmd := &cobra.Command{
		Use:   "trend",
		Short: "Chart score and training load history",
		RunE:  runTrend,
	}
	trendCmd.Flags().IntVar(&trendDays, "days", 30, "days of history to chart")
	trendCmd.Flags().StringVar(&trendEnd, "end", "", "last date to chart (YYYY-MM-DD, default today)")

	recomputeCmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rescore stored history from a date forward",
		RunE:  runRecompute,
	}
	recomputeCmd.Flags().StringVar(&recomputeFrom, "from", "", "first date to rescore (YYYY-MM-DD, default all history)")

	rootCmd.AddCommand(todayCmd, importCmd, trendCmd, recomputeCmd)
	return rootCmd
}

// loadConfig loads and validates the config. A nil config with a nil error
// means the user still has setup to do and a message was already printed.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n", configDir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil, nil
	}

	cfg.ApplyBands()
	return cfg, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if cfg == nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	export, err := health.ParseFile(args[0])
	if err != nil {
		return err
	}

	result, err := service.NewScoreService(db, cfg).ImportExport(export)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d days, scored %d.\n", result.DaysImported, result.DaysScored)
	return nil
}

func runToday(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if cfg == nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	date := todayDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := service.NewQueryService(db).GetDayReport(date)
	if errors.Is(err, store.ErrNoScores) {
		fmt.Printf("No scores for %s. Import a health export first:\n  readiness import <export.json>\n", date)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(renderDayReport(report))
	return nil
}

func renderDayReport(report *service.DayReport) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Readiness")+"  "+labelStyle.Render(report.Date), "")

	lines = append(lines, scoreLine("Recovery", report.Scores.Recovery, report.Scores.RecoveryBand, 0))
	lines = append(lines, scoreLine("Sleep", report.Scores.Sleep, report.Scores.SleepBand, 0))
	lines = append(lines, scoreLine("Strain", report.Scores.Strain, report.Scores.StrainBand, 1))

	if report.Scores.AlcoholFlag {
		lines = append(lines, "", bandStyles["Fair"].Render("!")+" Suppressed HRV with elevated RHR - late meal, alcohol or illness?")
	}

	if report.HasLoad {
		lines = append(lines, "", fmt.Sprintf("%s %6.1f   %s %6.1f   %s %+6.1f",
			labelStyle.Render("Fitness (CTL)"), report.Load.CTL,
			labelStyle.Render("Fatigue (ATL)"), report.Load.ATL,
			labelStyle.Render("Form (TSB)"), report.TSB))
		lines = append(lines, report.FormDescription)
	}

	return strings.Join(lines, "\n")
}

func scoreLine(name string, score *float64, band string, precision int) string {
	if score == nil {
		return fmt.Sprintf("%-10s %6s", name, labelStyle.Render("--"))
	}
	styled := band
	if style, ok := bandStyles[band]; ok {
		styled = style.Render(band)
	}
	return fmt.Sprintf("%-10s %6.*f  %s", name, precision, *score, styled)
}

func runTrend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if cfg == nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	end := trendEnd
	if end == "" {
		end = time.Now().Format("2006-01-02")
	}

	trend, err := service.NewQueryService(db).GetTrend(end, trendDays)
	if err != nil {
		return err
	}
	if len(trend.Scores) == 0 && len(trend.Loads) == 0 {
		fmt.Println("No history to chart yet.")
		return nil
	}

	charts := []struct {
		title  string
		series []float64
	}{
		{"Recovery", trend.RecoverySeries()},
		{"Sleep", trend.SleepSeries()},
		{"Strain", trend.StrainSeries()},
		{"Fitness (CTL)", trend.CTLSeries()},
		{"Fatigue (ATL)", trend.ATLSeries()},
	}

	for _, c := range charts {
		if len(c.series) < 3 {
			continue
		}
		fmt.Println(titleStyle.Render(c.title))
		fmt.Println(asciigraph.Plot(c.series,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Precision(1),
		))
		fmt.Println()
	}
	return nil
}

func runRecompute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if cfg == nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	from := recomputeFrom
	if from == "" {
		dates, err := db.ListObservationDates()
		if err != nil {
			return err
		}
		if len(dates) == 0 {
			fmt.Println("Nothing to recompute.")
			return nil
		}
		from = dates[0]
	}

	scored, err := service.NewScoreService(db, cfg).RecomputeFrom(from)
	if err != nil {
		return err
	}

	fmt.Printf("Rescored %d days from %s.\n", scored, from)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/contribcal/internal/chart"
	"github.com/christopherklint97/contribcal/internal/config"
	"github.com/christopherklint97/contribcal/internal/contributions"
	"github.com/christopherklint97/contribcal/internal/heatmap"
	"github.com/christopherklint97/contribcal/internal/tui"
	"github.com/dustin/go-humanize"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var rootCmd = &cobra.Command{
	Use:   "contribcal",
	Short: "Contribution calendar heat maps",
	Long:  "contribcal fetches a year of daily contribution counts and lays them out as a Sunday-aligned heat map.",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the heat map in the terminal",
	RunE:  runShow,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the heat map as an HTML chart",
	RunE:  runRender,
}

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Print the aggregated calendar as JSON",
	RunE:  runJSON,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the calendar output",
	RunE:  runSchema,
}

var summaryCmd = &cobra.Command{
	Use:   "summary [YEAR...]",
	Short: "Print totals and month anchors for one or more years",
	RunE:  runSummary,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().StringP("user", "u", "", "Username to fetch (defaults to [source] username)")
	rootCmd.PersistentFlags().StringP("year", "y", "", `Year to show, e.g. 2024 or "last year" (defaults to the current year)`)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	renderCmd.Flags().StringP("out", "o", "", "Output file (defaults to contributions-<user>-<year>.html)")
	configCmd.Flags().String("set-user", "", "Save the default username and exit")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles what every fetching command needs.
type session struct {
	cfg      *config.Config
	client   *contributions.Client
	palette  heatmap.Palette
	username string
	year     int
	logger   *slog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cfg, verbose)

	palette, err := cfg.ColorPalette()
	if err != nil {
		return nil, err
	}

	username, _ := cmd.Flags().GetString("user")
	if username == "" {
		username = cfg.Source.Username
	}
	if username == "" {
		return nil, fmt.Errorf("no username configured; pass --user or run 'contribcal config --set-user NAME'")
	}

	yearFlag, _ := cmd.Flags().GetString("year")
	year, err := resolveYear(yearFlag, time.Now())
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		client:   contributions.NewClient(cfg.Source.BaseURL, cfg.Timeout(), logger),
		palette:  palette,
		username: username,
		year:     year,
		logger:   logger,
	}, nil
}

func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (s *session) calendar(cmd *cobra.Command) (heatmap.Calendar, error) {
	set, err := s.client.Fetch(cmd.Context(), s.username, s.year)
	if err != nil {
		return heatmap.Calendar{}, err
	}
	return set.Calendar(s.year), nil
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	app := tui.NewApp(s.client, s.username, s.year, s.palette)
	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("contributions-%s-%d.html", s.username, s.year)
	}

	cal, err := s.calendar(cmd)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := chart.Render(f, cal, s.palette, "@"+s.username); err != nil {
		return err
	}

	s.logger.Info("chart written", "path", out, "weeks", len(cal.Weeks), "total", cal.Total)
	fmt.Printf("Wrote %s (%s in %d)\n", out, heatmap.ContributionPhrase(cal.Total), cal.Year)
	return nil
}

func runJSON(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	cal, err := s.calendar(cmd)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	schema := jsonschema.Reflect(&heatmap.Calendar{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	years := []int{s.year}
	if len(args) > 0 {
		years = years[:0]
		now := time.Now()
		for _, a := range args {
			y, err := resolveYear(a, now)
			if err != nil {
				return err
			}
			years = append(years, y)
		}
	}

	cals := make([]heatmap.Calendar, len(years))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			set, err := s.client.Fetch(ctx, s.username, year)
			if err != nil {
				return err
			}
			cals[i] = set.Calendar(year)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "@%s\n", s.username)
	for _, cal := range cals {
		fmt.Fprintf(w, "\n%d  %s contributions  (%d weeks)\n", cal.Year, humanize.Comma(int64(cal.Total)), len(cal.Weeks))
		for _, m := range cal.Months {
			fmt.Fprintf(w, "  %s  week %2d\n", m.Text, m.WeekIndex)
		}
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := config.DefaultFile()
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	if user, _ := cmd.Flags().GetString("set-user"); user != "" {
		if err := config.SaveUsername(user); err != nil {
			return fmt.Errorf("saving username: %w", err)
		}
		fmt.Printf("Default username set to %s\n", user)
		return nil
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	c, err := editorCommand(editor, configPath)
	if err != nil {
		// If editor fails, just print the path
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	return c.Run()
}

// editorCommand resolves editor on PATH and wires it to the terminal.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	bin, err := exec.LookPath(editor)
	if err != nil {
		return nil, fmt.Errorf("finding editor %q: %w", editor, err)
	}
	c := exec.Command(bin, path)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c, nil
}

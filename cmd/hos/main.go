package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hosline/internal/app"
	"hosline/internal/config"
	"hosline/internal/domain"
	"hosline/internal/events"
	"hosline/internal/hos"
	"hosline/internal/segments"
)

var rootCmd = &cobra.Command{
	Use:   "hos",
	Short: "Hours-of-service compliance CLI",
	Long: `hos evaluates a driver's duty log against US property-carrying HOS rules.
- Duty log: a YAML or JSON file of duty segments (start, end, status); statuses accept ELD shorthand like D, ON, OFF, SB, PC, YM.
- Weekly cap: 60 hours in 7 days or 70 in 8, counted from the last 34-hour restart.
- Daily caps: 11 hours driving and 14 hours on duty since the last 10-hour rest.
- Break: 30 minutes off duty once 8 hours of driving have accumulated.
- Projection: walks a planned schedule and reports when the first limit would be reached.
- Config: hos.yml in the workspace; flags and HOS_* environment variables override it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(newLogger(os.Stderr))
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("HOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("workspace", "w", ".", "workspace directory holding hos.yml")
	flags.StringP("segments", "s", "", "duty log file (YAML or JSON, - for stdin)")
	flags.Bool("json", false, "output JSON")
	flags.String("now", "", "evaluation instant, RFC 3339 (default: current time)")
	flags.String("cycle", "", "duty cycle: 60/7 or 70/8")
	flags.Bool("rule-70", false, "shorthand for --cycle 70/8")
	flags.String("timezone", "", "IANA timezone for restart night windows")
	flags.Int("other-employer-minutes", 0, "on-duty minutes worked for other employers")
	flags.Duration("prior-driving", 0, "driving assumed before the log when no break is on record")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	for _, name := range []string{"workspace", "segments", "json", "now", "cycle", "rule-70", "timezone", "other-employer-minutes", "prior-driving", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func registerCommands() {
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(availableCmd())
	rootCmd.AddCommand(restartCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(statusCmd())
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check compliance at an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := loadEvaluation(app.Overrides{})
			if err != nil {
				return err
			}
			report, err := hos.CheckCompliance(ev.log.Segments, ev.now, ev.opts.Options)
			if err != nil {
				return err
			}
			ev.trail().Compliance(cmd.Context(), ev.cfg.Driver.ID, ev.now, report)
			if viper.GetBool("json") {
				return printJSON(report)
			}
			renderReport(os.Stdout, report)
			return nil
		},
	}
}

func projectCmd() *cobra.Command {
	var planPath, start, limit string
	var horizon time.Duration
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the first violation in a planned schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			var o app.Overrides
			o.Limit = limit
			if cmd.Flags().Changed("horizon") {
				o.Horizon = &horizon
			}
			ev, err := loadEvaluation(o)
			if err != nil {
				return err
			}
			plan, err := segments.FromFile(planPath)
			if err != nil {
				return fmt.Errorf("plan: %w", err)
			}
			from := ev.now
			if start != "" {
				if from, err = app.ParseInstant(start, time.Now); err != nil {
					return err
				}
			}
			p, err := hos.ProjectViolation(ev.log.Segments, plan.Segments, from, ev.opts)
			if err != nil {
				return err
			}
			ev.trail().Projection(cmd.Context(), ev.cfg.Driver.ID, from, p)
			if viper.GetBool("json") {
				return printJSON(p)
			}
			if p.ViolationTime == nil {
				fmt.Println("no violation projected")
				return nil
			}
			fmt.Printf("first violation at %s (%s after start)\n", p.ViolationTime.Format(time.RFC3339), p.ViolationTime.Sub(from))
			renderViolations(os.Stdout, []domain.Violation{*p.Violation})
			return nil
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "planned duty segments file (YAML or JSON)")
	cmd.Flags().StringVar(&start, "start", "", "projection start, RFC 3339 (default: --now)")
	cmd.Flags().StringVar(&limit, "limit", "", "only report this violation type")
	cmd.Flags().DurationVar(&horizon, "horizon", 0, "maximum span to simulate (0: whole plan)")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func availableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Show hours remaining and recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := loadEvaluation(app.Overrides{})
			if err != nil {
				return err
			}
			a, err := hos.Available(ev.log.Segments, ev.now, ev.opts.Options)
			if err != nil {
				return err
			}
			ev.trail().Availability(cmd.Context(), ev.cfg.Driver.ID, ev.now, a)
			if viper.GetBool("json") {
				return printJSON(a)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Limit", "Remaining"})
			tw.AppendRow(table.Row{ev.opts.Cycle.String() + " weekly", formatHours(a.WeeklyHoursRemaining)})
			tw.AppendRow(table.Row{"driving", formatHours(a.DrivingHoursRemaining)})
			tw.AppendRow(table.Row{"on duty", formatHours(a.OnDutyHoursRemaining)})
			tw.Render()
			for _, r := range a.Recommendations {
				fmt.Println("-", r)
			}
			return nil
		},
	}
}

func restartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Show the most recent 34-hour restart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := loadEvaluation(app.Overrides{})
			if err != nil {
				return err
			}
			l, err := hos.NewLog(ev.log.Segments)
			if err != nil {
				return err
			}
			at, ok := l.LastRestart(ev.now, ev.opts.Location)
			if viper.GetBool("json") {
				out := map[string]any{"restart": ok}
				if ok {
					out["last_restart"] = at
				}
				return printJSON(out)
			}
			if !ok {
				fmt.Println("no qualifying restart on record")
				return nil
			}
			fmt.Printf("last restart ended %s (%s ago)\n", at.In(ev.opts.Location).Format(time.RFC3339), ev.now.Sub(at).Truncate(time.Minute))
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Inspect workspace config",
		Long:  "Config is hos.yml in the workspace: driver id and timezone, duty cycle, break cold start and projection defaults.",
	}
	cfg.AddCommand(configShowCmd())
	cfg.AddCommand(configValidateCmd())
	cfg.AddCommand(configInitCmd())
	return cfg
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.ResolveOptions(viper.GetString("workspace"), overrides(app.Overrides{}), segments.File{})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				doc, err := cfg.Document()
				if err != nil {
					return err
				}
				return printJSON(doc)
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate hos.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Load(viper.GetString("workspace"))
			if viper.GetBool("json") {
				return printJSON(map[string]any{"ok": err == nil, "error": fmt.Sprint(err)})
			}
			if err != nil {
				return err
			}
			fmt.Println("config OK")
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	var driverID string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default hos.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault(driverID)), 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&driverID, "driver-id", "", "driver identifier")
	return cmd
}

func statusCmd() *cobra.Command {
	st := &cobra.Command{Use: "status", Short: "Duty status helpers"}
	st.AddCommand(&cobra.Command{
		Use:   "parse <status>...",
		Short: "Show how raw status strings are classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type parsed struct {
				Input   string            `json:"input"`
				Status  domain.DutyStatus `json:"status"`
				OnDuty  bool              `json:"on_duty"`
				Driving bool              `json:"driving"`
			}
			out := make([]parsed, 0, len(args))
			for _, a := range args {
				s := domain.ParseDutyStatus(a)
				out = append(out, parsed{Input: a, Status: s, OnDuty: s.IsOnDuty(), Driving: s.IsDriving()})
			}
			if viper.GetBool("json") {
				return printJSON(out)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Input", "Status", "On duty", "Driving"})
			for _, p := range out {
				tw.AppendRow(table.Row{p.Input, p.Status, p.OnDuty, p.Driving})
			}
			tw.Render()
			return nil
		},
	})
	return st
}

type evaluation struct {
	cfg    *config.Config
	opts   hos.ProjectOptions
	log    segments.File
	now    time.Time
	logger *slog.Logger
}

func (e evaluation) trail() events.Writer {
	return events.Writer{Logger: e.logger}
}

func loadEvaluation(o app.Overrides) (evaluation, error) {
	path := viper.GetString("segments")
	if path == "" {
		return evaluation{}, fmt.Errorf("--segments required")
	}
	f, err := segments.FromFile(path)
	if err != nil {
		return evaluation{}, err
	}
	cfg, opts, err := app.ResolveOptions(viper.GetString("workspace"), overrides(o), f)
	if err != nil {
		return evaluation{}, err
	}
	now, err := app.ParseInstant(viper.GetString("now"), time.Now)
	if err != nil {
		return evaluation{}, err
	}
	logger := slog.Default().With("driver_id", cfg.Driver.ID)
	logger.Debug("evaluation loaded", "segments", len(f.Segments), "cycle", opts.Cycle.String(), "now", now)
	return evaluation{cfg: cfg, opts: opts, log: f, now: now, logger: logger}, nil
}

// overrides fills o with the persistent flags and HOS_* variables that were
// set explicitly.
func overrides(o app.Overrides) app.Overrides {
	o.Cycle = viper.GetString("cycle")
	if viper.GetBool("rule-70") {
		o.Cycle = hos.Cycle70x8.String()
	}
	o.Timezone = viper.GetString("timezone")
	if viper.IsSet("other-employer-minutes") {
		v := viper.GetInt("other-employer-minutes")
		o.OtherEmployerMinutes = &v
	}
	if viper.IsSet("prior-driving") {
		v := viper.GetDuration("prior-driving")
		o.PriorDriving = &v
	}
	return o
}

func newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if viper.GetBool("json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func renderReport(w io.Writer, r domain.ComplianceReport) {
	m := r.Metrics
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRow(table.Row{"compliant", r.Compliant})
	tw.AppendRow(table.Row{"hours used", fmt.Sprintf("%s / %.0f in %.0fh", formatHours(m.HoursUsed), m.MaxHours, m.WindowHours)})
	tw.AppendRow(table.Row{"driving since rest", formatHours(m.DrivingHours)})
	tw.AppendRow(table.Row{"on duty since rest", formatHours(m.OnDutyHours)})
	restart := "none"
	if m.LastRestart != nil {
		restart = m.LastRestart.Format(time.RFC3339)
	}
	tw.AppendRow(table.Row{"last restart", restart})
	tw.Render()
	if len(r.Violations) > 0 {
		renderViolations(w, r.Violations)
	}
}

func renderViolations(w io.Writer, vs []domain.Violation) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Type", "Severity", "Over", "Message"})
	for _, v := range vs {
		over := ""
		if v.HoursOver != nil {
			over = formatHours(*v.HoursOver)
		}
		tw.AppendRow(table.Row{v.Type, v.Severity, over, v.Message})
	}
	tw.Render()
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

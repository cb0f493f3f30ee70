package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geoedit/internal/config"
	"geoedit/internal/session"
	"geoedit/internal/store"
	"geoedit/internal/tui"
)

type rootOptions struct {
	configPath string
	dbPath     string
	fresh      bool
	mapping    mappingFlags
}

type mappingFlags struct {
	lat, lon, alt, heading, gimbalPitch string
}

func (p *mappingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.lat, "lat", "", "Latitude column (default: detected)")
	cmd.Flags().StringVar(&p.lon, "lon", "", "Longitude column (default: detected)")
	cmd.Flags().StringVar(&p.alt, "alt", "", "Altitude column (default: detected)")
	cmd.Flags().StringVar(&p.heading, "heading", "", "Heading column (default: detected)")
	cmd.Flags().StringVar(&p.gimbalPitch, "gimbal-pitch", "", "Gimbal pitch column (default: detected)")
}

// apply copies the columns given on the command line into cfg.
func (f mappingFlags) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Mapping.Lat, f.lat)
	set(&cfg.Mapping.Lon, f.lon)
	set(&cfg.Mapping.Alt, f.alt)
	set(&cfg.Mapping.Heading, f.heading)
	set(&cfg.Mapping.GimbalPitch, f.gimbalPitch)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:          "geoedit [waypoints.csv]",
		Short:        "Edit drone waypoint CSVs in the terminal",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), opts, args)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "geoedit.yaml", "Config file")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Session database (default from config)")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "Discard the saved session before starting")
	opts.mapping.register(cmd)
	cmd.AddCommand(newExportCmd(&opts.configPath), newConfigCmd(&opts.configPath))
	return cmd
}

func runEditor(ctx context.Context, opts rootOptions, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.mapping.apply(&cfg)
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	f, err := tea.LogToFile(cfg.LogFile, "geoedit")
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer f.Close()
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	if opts.fresh {
		if err := st.Clear(ctx); err != nil {
			return err
		}
	}

	sess := session.New(session.WithLogger(log), session.WithConfig(cfg))
	tuiOpts := []tui.Option{tui.WithConfig(cfg), tui.WithStore(st), tui.WithLogger(log)}
	var m tea.Model
	if len(args) == 1 {
		m = tui.NewWithPath(sess, args[0], tuiOpts...)
	} else {
		m = tui.NewFromStore(sess, tuiOpts...)
	}
	log.Info("starting", slog.String("db", cfg.DBPath), slog.Int("args", len(args)))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

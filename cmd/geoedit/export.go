package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"geoedit/internal/config"
	"geoedit/internal/dataset"
	"geoedit/internal/session"
)

type exportOptions struct {
	output  string
	format  string
	reverse bool
	mapping mappingFlags
}

func newExportCmd(configPath *string) *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export <waypoints.csv>",
		Short: "Convert a waypoint CSV to csv, geojson or xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			opts.mapping.apply(&cfg)
			if _, err := exportFormat(opts); err != nil {
				return err
			}
			if opts.output == "" || opts.output == "-" {
				return runExport(cmd.OutOrStdout(), args[0], cfg, opts)
			}
			f, err := os.Create(opts.output)
			if err != nil {
				return err
			}
			if err := runExport(f, args[0], cfg, opts); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "csv, geojson or xlsx (default: from output extension)")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "Reverse the flight order")
	opts.mapping.register(cmd)
	return cmd
}

func exportFormat(opts exportOptions) (string, error) {
	f := strings.ToLower(opts.format)
	if f == "" {
		switch strings.ToLower(filepath.Ext(opts.output)) {
		case ".geojson", ".json":
			f = "geojson"
		case ".xlsx":
			f = "xlsx"
		default:
			f = "csv"
		}
	}
	switch f {
	case "csv", "geojson", "xlsx":
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", opts.format)
}

func runExport(w io.Writer, in string, cfg config.Config, opts exportOptions) error {
	format, err := exportFormat(opts)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	headers, err := dataset.ReadHeaders(bytes.NewReader(b))
	if err != nil {
		return err
	}
	mapping := cfg.MappingFor(headers)
	imp, err := dataset.Import(bytes.NewReader(b), mapping, dataset.WithSampleRows(cfg.SchemaSampleRows))
	if err != nil {
		return err
	}
	sess := session.New(session.WithConfig(cfg))
	sess.Load(imp, mapping)
	if opts.reverse {
		sess.ReverseFlightPoints()
	}
	st := sess.State()
	switch format {
	case "geojson":
		return dataset.ExportGeoJSON(w, st.Points)
	case "xlsx":
		return dataset.ExportXLSX(w, st.Points, st.OriginalHeaders)
	default:
		return sess.ExportCSV(w)
	}
}

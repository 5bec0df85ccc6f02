package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/export"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

// NewScanCommand creates the scan command: photo in, scorecard out.
func (a *App) NewScanCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Extract a scorecard from a photo",
		Long: `Scan runs the extraction pipeline against a scorecard photo and
prints the reconciled scorecard. Output is JSON by default; use
--format yaml for YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.scan(cmd.Context(), args[0], timeout)
			if err != nil {
				return err
			}
			return a.printScorecard(cmd, result)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-scan timeout (default 60s)")
	return cmd
}

// NewExportCommand creates the export command: photo in, spreadsheet out.
func (a *App) NewExportCommand() *cobra.Command {
	var (
		timeout time.Duration
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export <image>",
		Short: "Extract a scorecard and write it as XLSX or CSV",
		Long: `Export scans a scorecard photo and writes the result to a
spreadsheet. The format follows the output extension: .xlsx for a
workbook, anything else for CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".xlsx"
			}

			card, err := a.scan(cmd.Context(), args[0], timeout)
			if err != nil {
				return err
			}
			if err := export.WriteFile(outPath, card); err != nil {
				return err
			}

			a.logger.Info().Str("path", outPath).Msg("scorecard exported")
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-scan timeout (default 60s)")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: image name with .xlsx)")
	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "scorelens %s (commit %s, built %s)\n", a.version, a.commit, a.date)
			return nil
		},
	}
}

// scan runs one reconciliation under the configured timeout.
func (a *App) scan(ctx context.Context, path string, timeout time.Duration) (*scorecard.Extracted, error) {
	lens, err := a.Lens()
	if err != nil {
		return nil, err
	}

	if timeout == 0 {
		timeout = a.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := lens.ScanFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Scorecard, nil
}

func (a *App) printScorecard(cmd *cobra.Command, card *scorecard.Extracted) error {
	switch strings.ToLower(a.config.Format) {
	case "yaml", "yml":
		data, err := yaml.Marshal(card)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case "", "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(card)
	default:
		return errors.NewValidationError("format", a.config.Format, "supported formats: json, yaml")
	}
}


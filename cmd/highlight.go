package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/dispatch"
	"github.com/grovetools/covview/pkg/highlight"
	"github.com/grovetools/covview/pkg/table"
	tuitable "github.com/grovetools/covview/tui/components/table"
	"github.com/grovetools/covview/util/pathutil"
	"github.com/grovetools/covview/util/sanitize"
)

// NewHighlightCmd creates the `highlight` command.
func NewHighlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Show which feature table rows lie in a genomic window",
		Long: `Loads the feature table and colours every displayed row by whether the
feature overlaps the window on the given contig.

Examples:
  # Render the table for chr1:1000-5000
  covview highlight --table features.json --contig chr1 --start 1000 --end 5000

  # Row styles as JSON for the first page
  covview highlight --contig chr1 --start 0 --end 2000 --displayed 0,1,2,3 --json

  # Export the table with visible rows filled
  covview highlight --contig chr1 --start 0 --end 2000 --export visible.xlsx`,
		RunE: runHighlight,
	}

	cmd.Flags().String("table", "", "Feature table (.json, .yaml or .xlsx); defaults to table.path")
	cmd.Flags().String("contig", "", "Contig of the visible window (default: first contig in the table)")
	cmd.Flags().Int("start", 0, "Window start")
	cmd.Flags().Int("end", 0, "Window end (default: end of the contig)")
	cmd.Flags().IntSlice("displayed", nil, "Row indices currently displayed (default: all rows)")
	cmd.Flags().String("export", "", "Also write the table to an .xlsx workbook")

	return cmd
}

func runHighlight(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)

	cfg, _, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	rows, err := loadRows(cmd, cfg.Table.Path)
	if err != nil {
		return err
	}

	region, err := regionFromFlags(cmd, rows)
	if err != nil {
		return err
	}

	displayed, _ := cmd.Flags().GetIntSlice("displayed")
	if displayed == nil {
		displayed = make([]int, len(rows))
		for i := range rows {
			displayed[i] = i
		}
	}

	d := dispatch.OptionsFromConfig(cfg)
	styles := highlight.New(d.Palette, d.HeaderRows).HighlightVisible(displayed, region, rows)

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		path = exportPath(path, region)
		if err := table.ExportXLSX(path, rows, highlight.VisibleMask(rows, region)); err != nil {
			return err
		}
		logger.WithField("path", path).Info("Exported feature table")
	}

	if opts.JSONOutput {
		return writeJSON(cmd, styles)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:%d-%d\n", region.Contig, region.Start, region.End)
	fmt.Fprintln(out, tuitable.FeatureTable(rows, styles, tuitable.DefaultOptions()))
	return nil
}

// exportPath names the workbook after the region when path is a directory.
func exportPath(path string, region table.Region) string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}
	name := sanitize.ForFilename(fmt.Sprintf("%s:%d-%d", region.Contig, region.Start, region.End))
	return filepath.Join(path, name+".xlsx")
}

// loadRows loads the --table file, falling back to the configured path.
func loadRows(cmd *cobra.Command, configured string) ([]table.Row, error) {
	path, _ := cmd.Flags().GetString("table")
	if path == "" {
		path = configured
	}
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no feature table: pass --table or set table.path")
	}
	expanded, err := pathutil.Expand(path)
	if err != nil {
		return nil, errors.TableLoad(path, err)
	}
	return table.Load(expanded)
}

// regionFromFlags builds the visible window from --contig, --start and
// --end, filling the gaps from the table.
func regionFromFlags(cmd *cobra.Command, rows []table.Row) (table.Region, error) {
	contig, _ := cmd.Flags().GetString("contig")
	if contig == "" {
		contigs := table.Contigs(rows)
		if len(contigs) == 0 {
			return table.Region{}, errors.New(errors.ErrCodeInvalidInput, "feature table is empty, pass --contig")
		}
		contig = contigs[0]
	}

	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	if !cmd.Flags().Changed("end") {
		end = contigSizes(rows)[contig]
	}
	if end < start {
		return table.Region{}, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("window end %d is before start %d", end, start))
	}
	return table.Region{Contig: contig, Start: start, End: end}, nil
}

// contigSizes estimates each contig's length as the furthest feature end.
func contigSizes(rows []table.Row) map[string]int {
	sizes := make(map[string]int)
	for _, r := range rows {
		if r.End > sizes[r.SeqID] {
			sizes[r.SeqID] = r.End
		}
	}
	return sizes
}

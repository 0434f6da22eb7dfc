package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siftdb/sift/internal/ingest"
	"github.com/siftdb/sift/internal/pipeline"
	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/sqlparser"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	CSVPath string
	Table   string
}

// queryPayload is the JSON shape of one query run.
type queryPayload struct {
	Token    string              `json:"token"`
	Rules    []string            `json:"applied_rules"`
	Logical  string              `json:"logical"`
	Optimize string              `json:"optimize"`
	Physical string              `json:"physical"`
	Rows     []row.Record        `json:"rows"`
	Log      []pipeline.StageLog `json:"log"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run one query against a CSV file",
		Long: `Run a single query through the full planning pipeline against a CSV
file loaded as an in-memory table.

Example:
  sift query "SELECT id, age+10 FROM t1 WHERE id<6 LIMIT 3" --csv people.csv --table t1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "path to CSV data file (required)")
	cmd.Flags().StringVar(&opts.Table, "table", "t1", "table name for the CSV data")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func runQuery(opts *QueryOptions, query string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(opts.CSVPath)
	if err != nil {
		_ = formatter.Error("E_READ", err.Error())
		return WrapExitError(ExitCommandError, "read csv file", err)
	}

	catalog, err := ingest.ParseCatalog(string(data), opts.Table)
	if err != nil {
		_ = formatter.Error("E_DATA", err.Error())
		return WrapExitError(ExitFailure, "parse csv data", err)
	}
	formatter.VerboseLog("loaded %d rows into table %q",
		len(catalog[row.CanonicalName(opts.Table)]), opts.Table)

	result, err := pipeline.Run(query, catalog)
	if err != nil {
		code := "E_INTERNAL"
		if sqlparser.IsSyntaxError(err) {
			code = "E_SYNTAX"
		}
		_ = formatter.Error(code, err.Error())
		return WrapExitError(ExitFailure, "run query", err)
	}

	if opts.Format == "json" {
		return formatter.SuccessJSON(queryPayload{
			Token:    result.Token,
			Rules:    result.AppliedRules,
			Logical:  result.LogicalTree,
			Optimize: result.OptimizedTree,
			Physical: result.PhysicalTree,
			Rows:     result.Records,
			Log:      result.Log,
		})
	}

	return printQueryText(formatter, result)
}

func printQueryText(f *OutputFormatter, result *pipeline.Result) error {
	w := f.Writer

	fmt.Fprintln(w, "Logical plan:")
	fmt.Fprintln(w, result.LogicalTree)
	if len(result.AppliedRules) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Optimized plan (applied: %s):\n", strings.Join(result.AppliedRules, ", "))
		fmt.Fprintln(w, result.OptimizedTree)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Physical plan:")
	fmt.Fprintln(w, result.PhysicalTree)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d row(s):\n", len(result.Records))
	return writeRows(w, result.Records)
}

func writeRows(w io.Writer, records []row.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// Package pipeline runs one query through the full planning and
// execution pipeline (parse, build, optimize, lower, execute) and
// captures a per-stage log plus the formatted plan trees for
// presentation. It is the single entry point shared by the CLI and the
// HTTP server.
package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/siftdb/sift/internal/executor"
	"github.com/siftdb/sift/internal/logical"
	"github.com/siftdb/sift/internal/optimizer"
	"github.com/siftdb/sift/internal/physical"
	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/sqlparser"
)

// StageLog is one human-readable log line from a pipeline stage.
type StageLog struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Result holds everything one pipeline run produced: the final rows,
// the formatted trees per stage, the applied optimizer rules, and the
// stage log. Token identifies the run in server logs.
type Result struct {
	Token         string
	Log           []StageLog
	LogicalTree   string
	OptimizedTree string
	PhysicalTree  string
	AppliedRules  []string
	Records       []row.Record
}

// newToken returns a time-ordered unique token for one pipeline run.
func newToken() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Run executes the five pipeline stages in order. Parse and lowering
// failures propagate unmodified; every other stage is total.
func Run(query string, catalog row.Catalog) (*Result, error) {
	result := &Result{Token: newToken()}

	log := func(stage, message string) {
		result.Log = append(result.Log, StageLog{Stage: stage, Message: message})
		slog.Debug("pipeline stage", "token", result.Token, "stage", stage, "message", message)
	}

	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return nil, err
	}
	log("parse", fmt.Sprintf("parsed query against table %q (%d fields, %d filters)",
		stmt.Table, len(stmt.Fields), len(stmt.Filters)))

	plan := logical.Build(stmt)
	result.LogicalTree = plan.FormatTree(0)
	log("logical", "initial logical plan generated")

	optResult := optimizer.Optimize(plan)
	result.AppliedRules = optResult.Applied
	result.OptimizedTree = optResult.Plan.FormatTree(0)
	if len(optResult.Applied) == 0 {
		log("optimize", "no optimization applied (no applicable pattern found)")
	} else {
		log("optimize", "applied rules: "+strings.Join(optResult.Applied, ", "))
	}

	phys, err := physical.Lower(optResult.Plan)
	if err != nil {
		return nil, err
	}
	result.PhysicalTree = phys.FormatTree(0)
	log("physical", "physical plan generated (execution strategy selected)")

	result.Records = executor.Execute(phys, catalog)
	log("execute", fmt.Sprintf("execution complete: %d rows returned", len(result.Records)))

	return result, nil
}

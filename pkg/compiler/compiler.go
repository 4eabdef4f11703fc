package compiler

import (
	"context"

	"github.com/google/uuid"

	"github.com/TFMV/ddlplan/pkg/errors"
	"github.com/TFMV/ddlplan/pkg/plan"
)

// localResultDir is the first local scratch directory handed out per query.
const localResultDir = "-local-10000"

// Config holds compiler settings.
type Config struct {
	// ScratchDir is the root under which per-query result files live.
	ScratchDir string
}

// ddlCompiler implements Compiler.
type ddlCompiler struct {
	scratch plan.Path
	logger  Logger
	metrics MetricsCollector
	newID   func() string
}

// New creates a new DDL compiler.
func New(cfg Config, logger Logger, metrics MetricsCollector) (Compiler, error) {
	scratch, err := plan.NewPath(cfg.ScratchDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidRequest, "invalid scratch directory")
	}
	return &ddlCompiler{
		scratch: scratch,
		logger:  logger,
		metrics: metrics,
		newID:   uuid.NewString,
	}, nil
}

// Compile parses stmt and builds its descriptor.
func (c *ddlCompiler) Compile(ctx context.Context, stmt string) (*Task, error) {
	timer := c.metrics.StartTimer("ddl_compile")
	defer timer.Stop()

	if err := ctx.Err(); err != nil {
		c.metrics.IncrementCounter("ddl_compile_errors", "reason", "canceled")
		return nil, errors.Wrap(err, errors.CodeCanceled, "compilation canceled")
	}

	c.logger.Debug("Compiling statement", "statement", stmt)

	parsed, err := Parse(stmt)
	if err != nil {
		reason := "parse"
		if errors.GetCode(err) == errors.CodeUnsupportedStatement {
			reason = "unsupported"
		}
		c.metrics.IncrementCounter("ddl_compile_errors", "reason", reason)
		c.logger.Warn("Rejected statement", "error", err, "statement", stmt)
		return nil, err
	}

	queryID := c.newID()
	resFile := c.scratch.Join(queryID, localResultDir)
	desc := plan.NewShowConnectorsDesc(resFile, parsed.Pattern)

	schema, err := plan.ParseResultSchema(desc.Schema())
	if err != nil {
		c.metrics.IncrementCounter("ddl_compile_errors", "reason", "schema")
		c.logger.Error("Failed to resolve result schema", "error", err, "schema", desc.Schema())
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to resolve result schema")
	}

	c.metrics.IncrementCounter("ddl_compiled", "operation", string(desc.Kind()))
	c.logger.Info("Compiled statement",
		"query_id", queryID,
		"operation", desc.Kind(),
		"result_file", desc.ResultDestination(),
		"has_pattern", parsed.Pattern != nil)

	return &Task{
		QueryID: queryID,
		Kind:    desc.Kind(),
		Desc:    desc,
		Schema:  schema,
	}, nil
}

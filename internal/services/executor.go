package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/whdeploy/internal/statement"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// timeoutWarning is logged when the client exceeds the statement timeout.
const timeoutWarning = "Statement timed out"

// StatementExecutor sends rendered SQL to the warehouse one statement at a time.
// A failing statement is logged as a warning and never stops the batch.
//
// Thread-Safety: safe for concurrent use if the client and logger are.
type StatementExecutor struct {
	client        whdeploy.WarehouseClient
	logger        whdeploy.Logger
	previewLength int
}

// NewStatementExecutor creates a StatementExecutor.
// Panics if client or logger is nil.
func NewStatementExecutor(client whdeploy.WarehouseClient, logger whdeploy.Logger) *StatementExecutor {
	if client == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &StatementExecutor{
		client:        client,
		logger:        logger,
		previewLength: whdeploy.StatementPreviewLength,
	}
}

// Execute splits renderedSQL and runs every statement in source order on
// connection. Each statement is attempted exactly once; the results are
// returned in the same order.
func (e *StatementExecutor) Execute(ctx context.Context, renderedSQL, description, connection string) []whdeploy.StatementResult {
	e.logger.Section("Executing: " + description)

	stmts := statement.Split(renderedSQL)
	results := make([]whdeploy.StatementResult, 0, len(stmts))

	for _, stmt := range stmts {
		e.logger.Info("\n> %s", statement.Preview(stmt, e.previewLength))

		result := e.run(ctx, stmt, connection)
		if result.Status == whdeploy.StatementWarned {
			e.logger.Warn("%s", result.Reason)
		} else {
			e.logger.Success("OK")
		}
		e.logger.Verbose("finished in %s (exit code %d)", result.Duration.Round(time.Millisecond), result.ExitCode)

		results = append(results, result)
	}

	return results
}

func (e *StatementExecutor) run(ctx context.Context, stmt, connection string) whdeploy.StatementResult {
	start := time.Now()
	res, err := e.client.Run(ctx, stmt, connection)

	result := whdeploy.StatementResult{
		Statement: stmt,
		ExitCode:  res.ExitCode,
		Duration:  time.Since(start),
	}

	switch {
	case errors.Is(err, whdeploy.ErrStatementTimeout):
		result.Status = whdeploy.StatementWarned
		result.TimedOut = true
		result.Reason = timeoutWarning
	case err != nil:
		result.Status = whdeploy.StatementWarned
		result.Reason = err.Error()
	case res.ExitCode != 0:
		result.Status = whdeploy.StatementWarned
		result.Reason = clientFailureReason(res)
	default:
		result.Status = whdeploy.StatementSucceeded
		result.Stdout = res.Stdout
	}

	return result
}

// clientFailureReason is the captured stderr, or the exit status when the
// client printed nothing.
func clientFailureReason(res whdeploy.ClientResult) string {
	if msg := strings.TrimSpace(res.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("client exited with status %d", res.ExitCode)
}

// Verify StatementExecutor implements the StatementRunner interface at compile time
var _ whdeploy.StatementRunner = (*StatementExecutor)(nil)

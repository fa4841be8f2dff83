// Package warehouse invokes the external warehouse command-line client.
//
// Each statement is one subprocess:
//
//	<binary> sql -q <statement> -c <connection>
//
// with stdout and stderr captured as text and a per-invocation timeout.
package warehouse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// waitDelay bounds how long Run waits for the client's output pipes to close
// after the process was killed on timeout.
const waitDelay = 2 * time.Second

// Client runs statements through the warehouse CLI.
type Client struct {
	binary  string
	timeout time.Duration
	logger  whdeploy.Logger
}

// NewClient creates a Client for binary with the given per-statement timeout.
// A zero timeout selects whdeploy.DefaultStatementTimeout.
// Panics if logger is nil.
func NewClient(binary string, timeout time.Duration, logger whdeploy.Logger) *Client {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if binary == "" {
		binary = whdeploy.DefaultClientBinary
	}
	if timeout <= 0 {
		timeout = whdeploy.DefaultStatementTimeout
	}
	return &Client{binary: binary, timeout: timeout, logger: logger}
}

// Args returns the client arguments for one statement.
func Args(statement, connection string) []string {
	return []string{"sql", "-q", statement, "-c", connection}
}

// Run implements whdeploy.WarehouseClient.
func (c *Client) Run(ctx context.Context, statement, connection string) (whdeploy.ClientResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Verbose("+ %s sql -q <%d bytes> -c %s", c.binary, len(statement), connection)

	cmd := exec.CommandContext(runCtx, c.binary, Args(statement, connection)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	result := whdeploy.ClientResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	// the deadline wins over whatever error the killed process produced
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return result, fmt.Errorf("%w after %s", whdeploy.ErrStatementTimeout, c.timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		return result, err
	}

	result.ExitCode = 0
	return result, nil
}

// Verify Client implements the WarehouseClient interface at compile time
var _ whdeploy.WarehouseClient = (*Client)(nil)

package command

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/whatcoin/whatcoin/internal/errors"
	"github.com/whatcoin/whatcoin/pkg/metrics"
)

// Dispatcher routes inbound message text through the command table.
type Dispatcher struct {
	table *Table
	log   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given table.
func NewDispatcher(table *Table, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{table: table, log: log}
}

// Handle tokenizes inbound text and dispatches it. Non-command text is
// ignored. The command's trailing @mention, if present, is stripped.
func (d *Dispatcher) Handle(ctx context.Context, req *Request, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return nil, nil
	}

	fields := strings.Fields(text)
	name, _, _ := strings.Cut(fields[0], "@")
	args := fields[1:]

	req.Log.Debug("dispatching", slog.String("command", name), slog.Any("args", args))
	return d.Execute(ctx, req, name, args)
}

// Execute tries every candidate registered for name in order. The first
// candidate whose arguments all resolve wins and no further candidates are
// tried. When none fully resolves, the reply is the first error of the
// candidate with the fewest failed arguments; ties keep the earlier
// candidate's error. An unrecognized name is logged and produces no reply.
// Hard failures (upstream fetch errors) are wrapped as upstream AppErrors for
// the transport's error boundary.
func (d *Dispatcher) Execute(ctx context.Context, req *Request, name string, args []string) (*Reply, error) {
	candidates := d.table.Candidates(name)
	if len(candidates) == 0 {
		d.log.Warn("unknown command", slog.String("command", name))
		metrics.RecordCommand("unknown", "ignored", 0)
		return nil, nil
	}

	start := time.Now()

	bestErrCount := -1
	bestErr := ""
	for _, cand := range candidates {
		resolved, err := ResolveAll(ctx, req, args, cand.Specs)
		if err != nil {
			metrics.RecordCommand(name, "error", time.Since(start))
			return nil, errors.NewUpstreamError(err)
		}

		errCount := 0
		firstErr := ""
		for _, r := range resolved {
			if r.ErrMsg != "" {
				errCount++
				if firstErr == "" {
					firstErr = r.ErrMsg
				}
			}
		}

		if errCount > 0 {
			if bestErrCount == -1 || errCount < bestErrCount {
				bestErrCount = errCount
				bestErr = firstErr
			}
			continue
		}

		values := make([]any, len(resolved))
		for i, r := range resolved {
			values[i] = r.Value
		}
		if cand.Reorder != nil {
			values = cand.Reorder(values)
		}

		reply, err := cand.Handler(ctx, req, values)
		status := "ok"
		if err != nil {
			status = "error"
			err = errors.NewUpstreamError(err)
		}
		metrics.RecordCommand(name, status, time.Since(start))
		return reply, err
	}

	metrics.RecordCommand(name, "invalid_args", time.Since(start))
	return &Reply{Text: bestErr}, nil
}

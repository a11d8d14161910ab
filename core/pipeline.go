package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/gpugrade/schema"
	"golang.org/x/sync/errgroup"
)

// RunOptions controls how a batch of rows is scored.
type RunOptions struct {
	Policy  schema.FailurePolicy // skip (default) or abort
	Workers int                  // <= 1 scores sequentially
}

// outcome is the per-row result slot shared with workers.
type outcome struct {
	scored schema.ScoredRow
	err    error
}

// ScoreRows runs the pipeline over every row. Rows are independent, so with more
// than one worker they are scored concurrently; results keep input order either way.
//
// Under the skip policy every failing row is reported in RunResult.Failures and
// left out of RunResult.Scored. Under the abort policy the first failing row in
// input order is returned as the error and no rows are scored.
func ScoreRows(cfg *Configuration, rows []schema.Row, opts RunOptions) (schema.RunResult, error) {
	if cfg == nil {
		return schema.RunResult{}, errors.New("nil configuration")
	}
	policy := opts.Policy
	if policy == "" {
		policy = schema.SkipFailures
	}
	if _, ok := schema.ValidFailurePolicies[policy]; !ok {
		return schema.RunResult{}, fmt.Errorf("unsupported failure policy %q", policy)
	}

	outcomes := make([]outcome, len(rows))
	if opts.Workers <= 1 {
		for i, row := range rows {
			scored, err := ScoreRow(cfg, row)
			outcomes[i] = outcome{scored: scored, err: err}
			if err != nil && policy == schema.AbortFailures {
				break
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, row := range rows {
			g.Go(func() error {
				scored, err := ScoreRow(cfg, row)
				outcomes[i] = outcome{scored: scored, err: err}
				return nil
			})
		}
		_ = g.Wait() // workers record failures in outcomes
	}

	result := schema.RunResult{Mode: cfg.Mode()}
	for i, o := range outcomes {
		if o.err == nil {
			result.Scored = append(result.Scored, o.scored)
			continue
		}
		if policy == schema.AbortFailures {
			return schema.RunResult{Mode: cfg.Mode()}, fmt.Errorf("aborting batch at row %d: %w", i, o.err)
		}
		result.Failures = append(result.Failures, schema.RowFailure{Index: i, RowID: rows[i].ID, Err: o.err})
	}
	return result, nil
}

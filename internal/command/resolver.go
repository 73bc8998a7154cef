package command

import (
	"context"

	"github.com/sourcegraph/conc"
)

// Resolved is the outcome of parsing one positional argument. Exactly one of
// Value and ErrMsg is meaningful: an empty ErrMsg means the argument parsed.
type Resolved struct {
	Value  any
	ErrMsg string

	failure error
}

// ResolveAll resolves every token against its positional spec concurrently
// and reassembles the results in input order. A missing token falls back to
// the spec's default before parsing. A hard parse failure (upstream fetch
// error) aborts the resolution.
func ResolveAll(ctx context.Context, req *Request, tokens []string, specs []Spec) ([]Resolved, error) {
	out := make([]Resolved, len(specs))

	var wg conc.WaitGroup
	for i := range specs {
		wg.Go(func() {
			spec := specs[i]

			raw := ""
			if i < len(tokens) {
				raw = tokens[i]
			}
			token := raw
			if token == "" {
				token = spec.Default
			}

			value, err := spec.Parse(ctx, req, token)
			switch {
			case err != nil:
				out[i] = Resolved{failure: err}
			case value == nil:
				out[i] = Resolved{ErrMsg: spec.ErrMsg(raw)}
			default:
				out[i] = Resolved{Value: value}
			}
		})
	}
	wg.Wait()

	for i := range out {
		if out[i].failure != nil {
			return nil, out[i].failure
		}
	}
	return out, nil
}

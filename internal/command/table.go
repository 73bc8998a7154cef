package command

import "context"

// Reply is what a handler produces. A nil *Reply means "send nothing".
type Reply struct {
	Text     string
	Markdown bool
	Photo    []byte
	Filename string
}

// HandlerFunc consumes already-resolved, positionally-ordered arguments.
type HandlerFunc func(ctx context.Context, req *Request, args []any) (*Reply, error)

// Candidate is one argument-shape interpretation of a command name. Reorder,
// when set, permutes the resolved values before the handler sees them.
type Candidate struct {
	Name    string
	Specs   []Spec
	Handler HandlerFunc
	Reorder func(args []any) []any
}

// Table is the declarative command registry. Candidates sharing a name are
// tried in registration order.
type Table struct {
	candidates map[string][]Candidate
}

// NewTable creates an empty command table.
func NewTable() *Table {
	return &Table{candidates: make(map[string][]Candidate)}
}

// Register appends a candidate for its command name.
func (t *Table) Register(c Candidate) {
	t.candidates[c.Name] = append(t.candidates[c.Name], c)
}

// Candidates returns the registered candidates for name in registration order.
func (t *Table) Candidates(name string) []Candidate {
	return t.candidates[name]
}

package install

import (
	"sort"
	"strings"
)

// Session tracks walker state across all root requests of one invocation.
//
// The completed set grows monotonically as packages are handled and is
// cleared only by an explicit Reset at batch boundaries. The stack mirrors
// the active recursion path and exists purely for cycle detection; it is
// empty whenever no walk is in progress. Sessions are not goroutine-safe:
// the walker is a synchronous recursion and never shares a session across
// goroutines.
type Session struct {
	completed map[string]bool
	stack     []string
	nodes     map[string]bool
	edges     []Edge
}

// Edge is one resolved dependency relation between two packages handled in
// a session, recorded for graph export.
type Edge struct {
	From string
	To   string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		completed: make(map[string]bool),
		nodes:     make(map[string]bool),
	}
}

// Completed reports whether name was already handled in this session.
func (s *Session) Completed(name string) bool { return s.completed[name] }

// MarkCompleted records name as handled for the rest of the session.
func (s *Session) MarkCompleted(name string) { s.completed[name] = true }

// CompletedNames returns the handled packages in lexical order.
func (s *Session) CompletedNames() []string {
	names := make([]string, 0, len(s.completed))
	for name := range s.completed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the whole completed set. Batch upgrades call it before
// walking their candidates, so packages handled earlier in the same
// invocation may be reprocessed; that is long-standing behavior, kept
// deliberately. Recorded graph data survives a Reset.
func (s *Session) Reset() {
	s.completed = make(map[string]bool)
}

// OnPath reports whether name is on the active recursion path.
func (s *Session) OnPath(name string) bool {
	for _, n := range s.stack {
		if n == name {
			return true
		}
	}
	return false
}

// Path returns a copy of the active recursion path, outermost first.
func (s *Session) Path() []string {
	path := make([]string, len(s.stack))
	copy(path, s.stack)
	return path
}

func (s *Session) push(name string) {
	s.stack = append(s.stack, name)
	s.nodes[name] = true
}

func (s *Session) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Session) recordEdge(from, to string) {
	s.nodes[from] = true
	s.nodes[to] = true
	s.edges = append(s.edges, Edge{From: from, To: to})
}

// Nodes returns every package touched by the session's walks, in lexical
// order.
func (s *Session) Nodes() []string {
	names := make([]string, 0, len(s.nodes))
	for name := range s.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns the dependency relations recorded during the session's
// walks, in discovery order.
func (s *Session) Edges() []Edge {
	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)
	return edges
}

// CycleError reports a dependency cycle discovered during a walk. Path
// holds the recursion stack at detection time with the repeated package
// appended, so the cycle is visible as a name occurring twice.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle detected: " + strings.Join(e.Path, " -> ")
}

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/aurum/pkg/install"
)

func TestToDOT(t *testing.T) {
	t.Parallel()

	g := &Graph{
		Nodes: []string{"app", "lib"},
		Edges: []install.Edge{{From: "app", To: "lib"}},
	}
	dot := ToDOT(g)

	for _, want := range []string{
		"digraph deps {",
		"rankdir=LR;",
		`"app";`,
		`"lib";`,
		`"app" -> "lib";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTQuotesNames(t *testing.T) {
	t.Parallel()

	g := &Graph{Nodes: []string{`odd"name`}}
	if dot := ToDOT(g); !strings.Contains(dot, `"odd\"name";`) {
		t.Errorf("DOT output does not quote node name:\n%s", dot)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	g := &Graph{
		Nodes: []string{"app", "lib"},
		Edges: []install.Edge{{From: "app", To: "lib"}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded struct {
		Nodes []string `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded.Nodes) != 2 || len(decoded.Edges) != 1 {
		t.Errorf("decoded = %+v, want 2 nodes and 1 edge", decoded)
	}
	if decoded.Edges[0].From != "app" || decoded.Edges[0].To != "lib" {
		t.Errorf("edge = %+v, want app -> lib", decoded.Edges[0])
	}
}

func TestWriteJSONEmptyGraph(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&Graph{}, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "null") {
		t.Errorf("empty graph encodes null instead of []:\n%s", out)
	}
}

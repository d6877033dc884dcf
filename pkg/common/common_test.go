package common

import (
	"encoding/json"
	"strings"
	"testing"
)

func testGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{Name: "Alice", FullConnections: 3},
			{Name: "Bob", FullConnections: 3},
			{Name: "Carol", FullConnections: 2},
		},
		Edges: []Edge{
			{Source: "Alice", Target: "Bob", Weight: 2},
			{Source: "Bob", Target: "Carol", Weight: 1},
		},
	}
}

func TestGraphNode(t *testing.T) {
	g := testGraph()

	node, ok := g.Node("Alice")
	if !ok {
		t.Fatal("Node(Alice) not found")
	}
	if node.FullConnections != 3 {
		t.Errorf("FullConnections = %d, want 3", node.FullConnections)
	}

	if _, ok := g.Node("Dave"); ok {
		t.Error("Node(Dave) found, want missing")
	}
}

func TestGraphHasEdge(t *testing.T) {
	g := testGraph()

	if !g.HasEdge("Alice", "Bob") {
		t.Error("HasEdge(Alice, Bob) = false")
	}
	// order must not matter
	if !g.HasEdge("Bob", "Alice") {
		t.Error("HasEdge(Bob, Alice) = false")
	}
	if g.HasEdge("Alice", "Carol") {
		t.Error("HasEdge(Alice, Carol) = true, want false")
	}
}

func TestGraphDegree(t *testing.T) {
	g := testGraph()

	tests := []struct {
		name string
		want int
	}{
		{name: "Alice", want: 1},
		{name: "Bob", want: 2},
		{name: "Carol", want: 1},
		{name: "Dave", want: 0},
	}

	for _, tt := range tests {
		if got := g.Degree(tt.name); got != tt.want {
			t.Errorf("Degree(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGraphDensity(t *testing.T) {
	g := testGraph()

	// 2 edges out of 3 possible
	want := 2.0 / 3.0
	if got := g.Density(); got != want {
		t.Errorf("Density() = %v, want %v", got, want)
	}

	empty := NewGraph()
	if got := empty.Density(); got != 0 {
		t.Errorf("Density() of empty graph = %v, want 0", got)
	}

	single := &Graph{Nodes: []Node{{Name: "Alice"}}}
	if got := single.Density(); got != 0 {
		t.Errorf("Density() of single node = %v, want 0", got)
	}
}

func TestGraphSort(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{Name: "Carol"}, {Name: "Alice"}, {Name: "Bob"}},
		Edges: []Edge{
			{Source: "Bob", Target: "Carol"},
			{Source: "Alice", Target: "Carol"},
			{Source: "Alice", Target: "Bob"},
		},
	}

	g.Sort()

	wantNodes := []string{"Alice", "Bob", "Carol"}
	for i, name := range wantNodes {
		if g.Nodes[i].Name != name {
			t.Errorf("Nodes[%d] = %s, want %s", i, g.Nodes[i].Name, name)
		}
	}

	if g.Edges[0].Target != "Bob" || g.Edges[1].Target != "Carol" || g.Edges[2].Source != "Bob" {
		t.Errorf("edges not sorted by (source, target): %+v", g.Edges)
	}
}

func TestGraphJSONShape(t *testing.T) {
	data, err := json.Marshal(NewGraph())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"nodes":[],"edges":[]}` {
		t.Errorf("empty graph JSON = %s", data)
	}

	sentiment := 0.25
	withSentiment, err := json.Marshal(Edge{
		Source: "Alice", Target: "Bob", Weight: 2,
		Sentiment: &sentiment, SentimentCount: 2,
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(withSentiment), `"sentiment":0.25`) {
		t.Errorf("edge JSON missing sentiment: %s", withSentiment)
	}

	withoutSentiment, err := json.Marshal(Edge{Source: "Alice", Target: "Bob", Weight: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(withoutSentiment), "sentiment") {
		t.Errorf("edge JSON has sentiment attribute when unset: %s", withoutSentiment)
	}
}

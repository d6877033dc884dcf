package common

import "sort"

// Sentence is one sentence-level unit of an analyzed document. It carries
// the raw sentence text and the labeled entity mentions the NLP pipeline
// found in it, in document order.
type Sentence struct {
	Index    int             `json:"index"`
	Text     string          `json:"text"`
	Mentions []EntityMention `json:"mentions"`
}

// EntityMention is a single labeled entity occurrence inside a sentence.
// Entities are identified by their exact surface string; no case or
// whitespace normalization is applied, so "Bob" and "bob" are distinct.
type EntityMention struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Classification is a sentiment label with the classifier's confidence in it.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Node is a major entity in the character network. FullConnections counts
// every co-occurrence pair the entity participated in, including pairs
// with minor entities that were filtered out of the graph.
type Node struct {
	Name            string `json:"name"`
	FullConnections int    `json:"full_connections"`
}

// Edge is an undirected connection between two major entities. Source and
// Target are stored in canonical (lexicographic) order so the same pair
// never appears twice. Weight is the number of sentences in which both
// entities were mentioned. Sentiment, when present, is the average
// per-sentence sentiment score for those sentences, rounded to three
// decimal places; SentimentCount is the number of samples behind it.
type Edge struct {
	Source         string   `json:"source"`
	Target         string   `json:"target"`
	Weight         int      `json:"weight"`
	Sentiment      *float64 `json:"sentiment,omitempty"`
	SentimentCount int      `json:"sentiment_count,omitempty"`
}

// Graph is the materialized character network: one node per major entity,
// one weighted edge per co-occurring major pair. Nodes and edges are kept
// sorted so that identical aggregates always produce an identical graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewGraph returns an empty graph with allocated (non-nil) node and edge
// slices, so that a degenerate analysis still serializes as empty arrays.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Node looks up a node by entity name.
func (g *Graph) Node(name string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// HasEdge reports whether the two entities are connected, in either order.
func (g *Graph) HasEdge(a, b string) bool {
	if a > b {
		a, b = b, a
	}
	for _, e := range g.Edges {
		if e.Source == a && e.Target == b {
			return true
		}
	}
	return false
}

// Degree returns the number of edges incident to the named node.
func (g *Graph) Degree(name string) int {
	degree := 0
	for _, e := range g.Edges {
		if e.Source == name || e.Target == name {
			degree++
		}
	}
	return degree
}

// Density returns the ratio of existing edges to possible edges. A graph
// with fewer than two nodes has density 0.
func (g *Graph) Density() float64 {
	n := len(g.Nodes)
	if n < 2 {
		return 0
	}
	possible := float64(n*(n-1)) / 2
	return float64(len(g.Edges)) / possible
}

// Sort orders nodes by name and edges by (source, target). Materialization
// already emits sorted output; Sort exists for graphs reconstructed from
// storage or JSON.
func (g *Graph) Sort() {
	sort.Slice(g.Nodes, func(i, j int) bool {
		return g.Nodes[i].Name < g.Nodes[j].Name
	})
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
}

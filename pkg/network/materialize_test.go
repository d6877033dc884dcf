package network

import (
	"reflect"
	"testing"
)

func TestMaterialize(t *testing.T) {
	pair := NewPair("Alice", "Bob")
	params := MaterializeParams{
		Major:           set("Alice", "Bob"),
		FullConnections: map[string]int{"Alice": 3, "Bob": 3, "Carol": 2},
		PairCounts:      map[Pair]int{pair: 2},
		PairSentiments:  map[Pair][]float64{pair: {0.5, -0.5}},
		UseSentiment:    true,
	}

	graph := Materialize(params)

	if graph.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", graph.NodeCount())
	}
	if _, ok := graph.Node("Carol"); ok {
		t.Error("minor entity Carol got a node")
	}

	alice, _ := graph.Node("Alice")
	if alice.FullConnections != 3 {
		t.Errorf("Alice.FullConnections = %d, want 3", alice.FullConnections)
	}

	if graph.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", graph.EdgeCount())
	}
	edge := graph.Edges[0]
	if edge.Source != "Alice" || edge.Target != "Bob" {
		t.Errorf("edge = %s-%s, want Alice-Bob", edge.Source, edge.Target)
	}
	if edge.Weight != 2 {
		t.Errorf("edge.Weight = %d, want 2", edge.Weight)
	}

	// samples [0.5, -0.5] average to exactly 0.0
	if edge.Sentiment == nil || *edge.Sentiment != 0.0 {
		t.Errorf("edge.Sentiment = %v, want 0.0", edge.Sentiment)
	}
	if edge.SentimentCount != 2 {
		t.Errorf("edge.SentimentCount = %d, want 2", edge.SentimentCount)
	}
}

func TestMaterializeSentimentRounding(t *testing.T) {
	pair := NewPair("Alice", "Bob")
	graph := Materialize(MaterializeParams{
		Major:          set("Alice", "Bob"),
		PairCounts:     map[Pair]int{pair: 3},
		PairSentiments: map[Pair][]float64{pair: {0.1, 0.2, 0.2}},
		UseSentiment:   true,
	})

	// mean 0.1666... rounds to 0.167
	if got := *graph.Edges[0].Sentiment; got != 0.167 {
		t.Errorf("Sentiment = %v, want 0.167", got)
	}
}

func TestMaterializeSentimentTieRoundsAwayFromZero(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		// exact 4th-decimal ties round away from zero, not half-to-even
		{name: "positive tie", samples: []float64{0.0625}, want: 0.063},
		{name: "negative tie", samples: []float64{-0.0625}, want: -0.063},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := NewPair("Alice", "Bob")
			graph := Materialize(MaterializeParams{
				Major:          set("Alice", "Bob"),
				PairCounts:     map[Pair]int{pair: 1},
				PairSentiments: map[Pair][]float64{pair: tt.samples},
				UseSentiment:   true,
			})

			if got := *graph.Edges[0].Sentiment; got != tt.want {
				t.Errorf("Sentiment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterializeNoSentimentAttribute(t *testing.T) {
	pair := NewPair("Alice", "Bob")
	graph := Materialize(MaterializeParams{
		Major:        set("Alice", "Bob"),
		PairCounts:   map[Pair]int{pair: 1},
		UseSentiment: false,
	})

	if graph.Edges[0].Sentiment != nil {
		t.Errorf("Sentiment = %v, want absent when disabled", *graph.Edges[0].Sentiment)
	}
	if graph.Edges[0].SentimentCount != 0 {
		t.Errorf("SentimentCount = %d, want 0", graph.Edges[0].SentimentCount)
	}
}

func TestMaterializeEmptySamplesDefensiveDefault(t *testing.T) {
	pair := NewPair("Alice", "Bob")
	graph := Materialize(MaterializeParams{
		Major:        set("Alice", "Bob"),
		PairCounts:   map[Pair]int{pair: 1},
		UseSentiment: true,
	})

	edge := graph.Edges[0]
	if edge.Sentiment == nil || *edge.Sentiment != 0.0 {
		t.Errorf("Sentiment = %v, want 0.0 for empty sample list", edge.Sentiment)
	}
	if edge.SentimentCount != 0 {
		t.Errorf("SentimentCount = %d, want 0", edge.SentimentCount)
	}
}

func TestMaterializeIsolatedMajorEntity(t *testing.T) {
	graph := Materialize(MaterializeParams{
		Major: set("Hermit"),
	})

	if graph.NodeCount() != 1 {
		t.Fatalf("NodeCount() = %d, want 1", graph.NodeCount())
	}
	node, _ := graph.Node("Hermit")
	if node.FullConnections != 0 {
		t.Errorf("FullConnections = %d, want 0 for isolated entity", node.FullConnections)
	}
	if graph.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", graph.EdgeCount())
	}
}

func TestMaterializeEmptyInput(t *testing.T) {
	graph := Materialize(MaterializeParams{})

	if graph.Nodes == nil || graph.Edges == nil {
		t.Fatal("Materialize() returned nil slices, want allocated empty graph")
	}
	if graph.NodeCount() != 0 || graph.EdgeCount() != 0 {
		t.Errorf("graph = %d nodes, %d edges, want empty", graph.NodeCount(), graph.EdgeCount())
	}
}

func TestMaterializeIdempotent(t *testing.T) {
	pair1 := NewPair("Alice", "Bob")
	pair2 := NewPair("Bob", "Carol")
	params := MaterializeParams{
		Major:           set("Alice", "Bob", "Carol"),
		FullConnections: map[string]int{"Alice": 2, "Bob": 4, "Carol": 2},
		PairCounts:      map[Pair]int{pair1: 2, pair2: 1},
		PairSentiments:  map[Pair][]float64{pair1: {0.3}, pair2: {-0.2}},
		UseSentiment:    true,
	}

	first := Materialize(params)
	second := Materialize(params)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Materialize() is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

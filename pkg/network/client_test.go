package network

import (
	"context"
	"reflect"
	"testing"

	"castnet/pkg/common"
)

func personSentence(index int, text string, names ...string) common.Sentence {
	mentions := make([]common.EntityMention, 0, len(names))
	for _, name := range names {
		mentions = append(mentions, common.EntityMention{Text: name, Label: "PERSON"})
	}
	return common.Sentence{Index: index, Text: text, Mentions: mentions}
}

func TestBuildNetworkScenario(t *testing.T) {
	sentences := []common.Sentence{
		personSentence(0, "Alice met Bob.", "Alice", "Bob"),
		personSentence(1, "Alice slept.", "Alice"),
		personSentence(2, "Alice, Bob and Carol dined.", "Alice", "Bob", "Carol"),
	}

	client, err := NewNetworkClient(NewNetworkClientParams{MinMentions: 2})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	result, err := client.BuildNetwork(context.Background(), sentences)
	if err != nil {
		t.Fatalf("BuildNetwork() error = %v", err)
	}

	wantCounts := map[string]int{"Alice": 3, "Bob": 2, "Carol": 1}
	if !reflect.DeepEqual(result.MentionCounts, wantCounts) {
		t.Errorf("MentionCounts = %v, want %v", result.MentionCounts, wantCounts)
	}
	if !reflect.DeepEqual(result.Major, set("Alice", "Bob")) {
		t.Errorf("Major = %v, want Alice+Bob", result.Major)
	}
	if result.SentenceCount != 3 {
		t.Errorf("SentenceCount = %d, want 3", result.SentenceCount)
	}

	graph := result.Graph
	if graph.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", graph.NodeCount())
	}
	if _, ok := graph.Node("Carol"); ok {
		t.Error("Carol got a node despite being minor")
	}
	if !graph.HasEdge("Bob", "Alice") {
		t.Fatal("missing Alice-Bob edge")
	}
	if graph.Edges[0].Weight != 2 {
		t.Errorf("edge weight = %d, want 2", graph.Edges[0].Weight)
	}

	alice, _ := graph.Node("Alice")
	if alice.FullConnections != 3 {
		t.Errorf("Alice.FullConnections = %d, want 3", alice.FullConnections)
	}

	// full connections count minor partners too, so they can never drop
	// below the node's degree in the filtered graph
	for _, node := range graph.Nodes {
		if node.FullConnections < graph.Degree(node.Name) {
			t.Errorf("FullConnections[%s] = %d < degree %d",
				node.Name, node.FullConnections, graph.Degree(node.Name))
		}
	}
}

func TestBuildNetworkEmptyInput(t *testing.T) {
	client, err := NewNetworkClient(NewNetworkClientParams{})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	result, err := client.BuildNetwork(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildNetwork() error = %v", err)
	}

	if result.Graph.NodeCount() != 0 || result.Graph.EdgeCount() != 0 {
		t.Errorf("graph = %d nodes, %d edges, want empty",
			result.Graph.NodeCount(), result.Graph.EdgeCount())
	}
	if result.Graph.Nodes == nil || result.Graph.Edges == nil {
		t.Error("empty graph has nil slices")
	}
}

func TestBuildNetworkDefaultThreshold(t *testing.T) {
	client, err := NewNetworkClient(NewNetworkClientParams{})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	// two mentions each: below the default threshold of 3
	sentences := []common.Sentence{
		personSentence(0, "Alice met Bob.", "Alice", "Bob"),
		personSentence(1, "Alice met Bob again.", "Alice", "Bob"),
	}

	result, err := client.BuildNetwork(context.Background(), sentences)
	if err != nil {
		t.Fatalf("BuildNetwork() error = %v", err)
	}
	if result.Graph.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0 below default threshold", result.Graph.NodeCount())
	}
}

func TestBuildNetworkWithSentiment(t *testing.T) {
	classifier := &stubClassifier{
		classification: common.Classification{Label: "joy", Confidence: 0.5},
	}

	client, err := NewNetworkClient(NewNetworkClientParams{
		MinMentions:  1,
		UseSentiment: true,
		Classifier:   classifier,
	})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	sentences := []common.Sentence{
		personSentence(0, "Alice and Bob laughed.", "Alice", "Bob"),
		personSentence(1, "Alice wandered alone.", "Alice"),
		personSentence(2, "Alice and Bob sang.", "Alice", "Bob"),
	}

	result, err := client.BuildNetwork(context.Background(), sentences)
	if err != nil {
		t.Fatalf("BuildNetwork() error = %v", err)
	}

	// only the two sentences with >=2 entities get scored
	if classifier.calls != 2 {
		t.Errorf("classifier called %d times, want 2", classifier.calls)
	}

	edge := result.Graph.Edges[0]
	if edge.Sentiment == nil || *edge.Sentiment != 0.5 {
		t.Errorf("edge.Sentiment = %v, want 0.5", edge.Sentiment)
	}
	if edge.SentimentCount != 2 {
		t.Errorf("edge.SentimentCount = %d, want 2", edge.SentimentCount)
	}
}

func TestBuildNetworkSentimentDisabledHasNoAttribute(t *testing.T) {
	client, err := NewNetworkClient(NewNetworkClientParams{MinMentions: 1})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	sentences := []common.Sentence{
		personSentence(0, "Alice met Bob.", "Alice", "Bob"),
	}

	result, err := client.BuildNetwork(context.Background(), sentences)
	if err != nil {
		t.Fatalf("BuildNetwork() error = %v", err)
	}
	if result.Graph.Edges[0].Sentiment != nil {
		t.Errorf("Sentiment = %v, want absent", *result.Graph.Edges[0].Sentiment)
	}
}

func TestNewNetworkClientRequiresClassifier(t *testing.T) {
	_, err := NewNetworkClient(NewNetworkClientParams{UseSentiment: true})
	if err == nil {
		t.Error("NewNetworkClient() expected error when sentiment enabled without classifier")
	}
}

func TestBuildNetworkCustomLabels(t *testing.T) {
	client, err := NewNetworkClient(NewNetworkClientParams{
		MinMentions:  1,
		EntityLabels: []string{"person", "ORGANIZATION"},
	})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	sentences := []common.Sentence{
		{
			Index: 0,
			Text:  "Alice joined Acme in Paris.",
			Mentions: []common.EntityMention{
				{Text: "Alice", Label: "PERSON"},
				{Text: "Acme", Label: "ORGANIZATION"},
				{Text: "Paris", Label: "LOCATION"},
			},
		},
	}

	result, err := client.BuildNetwork(context.Background(), sentences)
	if err != nil {
		t.Fatalf("BuildNetwork() error = %v", err)
	}

	if result.Graph.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2 (PERSON + ORGANIZATION)", result.Graph.NodeCount())
	}
	if _, ok := result.Graph.Node("Paris"); ok {
		t.Error("LOCATION entity got a node despite not being accepted")
	}
}

func TestBuildNetworkCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewNetworkClient(NewNetworkClientParams{MinMentions: 1})
	if err != nil {
		t.Fatalf("NewNetworkClient() error = %v", err)
	}

	sentences := []common.Sentence{
		personSentence(0, "Alice met Bob.", "Alice", "Bob"),
	}

	if _, err := client.BuildNetwork(ctx, sentences); err == nil {
		t.Error("BuildNetwork() expected error for canceled context")
	}
}

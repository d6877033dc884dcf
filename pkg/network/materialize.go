package network

import (
	"math"
	"sort"

	"castnet/pkg/common"
)

// MaterializeParams carries the finished aggregates of one run into graph
// construction.
type MaterializeParams struct {
	Major           map[string]bool
	FullConnections map[string]int
	PairCounts      map[Pair]int
	PairSentiments  map[Pair][]float64

	UseSentiment bool
}

// Materialize builds the final graph from the aggregates: one node per
// major entity carrying its full-connection count (0 for isolated
// entities), one edge per co-occurring major pair carrying its weight and,
// when sentiment is enabled, the rounded average sentiment with its sample
// count. Output is sorted, so identical aggregates always materialize into
// an identical graph.
func Materialize(params MaterializeParams) *common.Graph {
	graph := common.NewGraph()

	names := make([]string, 0, len(params.Major))
	for entity := range params.Major {
		names = append(names, entity)
	}
	sort.Strings(names)

	for _, name := range names {
		graph.Nodes = append(graph.Nodes, common.Node{
			Name:            name,
			FullConnections: params.FullConnections[name],
		})
	}

	pairs := make([]Pair, 0, len(params.PairCounts))
	for pair := range params.PairCounts {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	for _, pair := range pairs {
		count := params.PairCounts[pair]
		if count < 1 {
			continue
		}

		edge := common.Edge{
			Source: pair.A,
			Target: pair.B,
			Weight: count,
		}

		if params.UseSentiment {
			samples := params.PairSentiments[pair]
			sentiment := round3(mean(samples))
			edge.Sentiment = &sentiment
			edge.SentimentCount = len(samples)
		}

		graph.Edges = append(graph.Edges, edge)
	}

	return graph
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"castnet/internal/util"
	"castnet/pkg/ai"
	oai "castnet/pkg/ai/ollama"
	gai "castnet/pkg/ai/openai"
	"castnet/pkg/loader"
	loaderio "castnet/pkg/loader/io"
	"castnet/pkg/loader/web"
	"castnet/pkg/logger"
	"castnet/pkg/logger/console"
	"castnet/pkg/network"
	"castnet/pkg/nlp"
)

func main() {
	filePath := flag.String("file", "", "path to a local text document")
	url := flag.String("url", "", "URL of a document to analyze")
	minMentions := flag.Int("min-mentions", network.DefaultMinMentions, "minimum sentence mentions for an entity to become a node")
	useSentiment := flag.Bool("sentiment", false, "score relationship sentiment")
	labels := flag.String("labels", "PERSON", "comma-separated entity labels to accept")
	out := flag.String("out", "", "write the graph JSON to this file instead of stdout")
	flag.Parse()

	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	if (*filePath == "") == (*url == "") {
		logger.Fatal("Exactly one of -file or -url is required")
	}

	ctx := context.Background()

	text, err := loadDocument(ctx, *filePath, *url)
	if err != nil {
		logger.Fatal("Failed to load document", "err", err)
	}

	aiClient := newAIClient()

	sentences := nlp.Segment(text)
	logger.Info("Document segmented", "sentences", len(sentences))

	entityLabels := strings.Split(*labels, ",")

	annotator := nlp.NewAIAnnotator(nlp.NewAIAnnotatorParams{
		Client:              aiClient,
		EntityLabels:        entityLabels,
		MaxParallelRequests: int(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
	})

	annotated, err := annotator.Annotate(ctx, sentences)
	if err != nil {
		logger.Fatal("Failed to annotate document", "err", err)
	}

	params := network.NewNetworkClientParams{
		MinMentions:  *minMentions,
		UseSentiment: *useSentiment,
		EntityLabels: entityLabels,
	}
	if *useSentiment {
		params.Classifier = nlp.NewAIClassifier(nlp.NewAIClassifierParams{
			Client: aiClient,
		})
	}

	client, err := network.NewNetworkClient(params)
	if err != nil {
		logger.Fatal("Failed to create network client", "err", err)
	}

	result, err := client.BuildNetwork(ctx, annotated)
	if err != nil {
		logger.Fatal("Failed to build network", "err", err)
	}

	printFrequencyReport(result)
	printNetworkSummary(result, *minMentions)

	graphJSON, err := json.MarshalIndent(result.Graph, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode graph", "err", err)
	}

	if *out != "" {
		if err := os.WriteFile(*out, graphJSON, 0o644); err != nil {
			logger.Fatal("Failed to write graph", "path", *out, "err", err)
		}
		logger.Info("Graph written", "path", *out)
	} else {
		fmt.Println(string(graphJSON))
	}

	metrics := aiClient.GetMetrics()
	logger.Info(
		"AI Metrics",
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"total_tokens", metrics.TotalTokens,
		"duration_ms", metrics.DurationMs,
	)
}

func loadDocument(ctx context.Context, filePath, url string) (string, error) {
	var file loader.DocumentFile

	if filePath != "" {
		file = loader.NewDocumentFile(loader.NewDocumentFileParams{
			ID:     "local",
			Path:   filePath,
			Loader: loaderio.NewIODocumentLoader(),
		})
	} else {
		file = loader.NewDocumentFile(loader.NewDocumentFileParams{
			ID:     "web",
			Path:   url,
			Loader: web.NewWebDocumentLoader(),
		})
	}

	data, err := file.GetText(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newAIClient() ai.TextAIClient {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		client, err := oai.NewTextOllamaClient(oai.NewTextOllamaClientParams{
			TaggingModel:    util.GetEnv("AI_TAGGING_MODEL"),
			CompletionModel: util.GetEnv("AI_COMPLETION_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewTextOpenAIClient(gai.NewTextOpenAIClientParams{
			TaggingModel:    util.GetEnv("AI_TAGGING_MODEL"),
			CompletionModel: util.GetEnv("AI_COMPLETION_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}
}

func printFrequencyReport(result *network.Result) {
	type entityCount struct {
		name  string
		count int
	}

	counts := make([]entityCount, 0, len(result.MentionCounts))
	for name, count := range result.MentionCounts {
		counts = append(counts, entityCount{name: name, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})

	fmt.Printf("\nEntities: %d total, %d major\n", len(counts), len(result.Major))

	top := counts[:util.Min(len(counts), 15)]
	for _, ec := range top {
		marker := " "
		if result.Major[ec.name] {
			marker = "*"
		}
		fmt.Printf("  %s %-30s %d\n", marker, ec.name, ec.count)
	}
}

func printNetworkSummary(result *network.Result, minMentions int) {
	graph := result.Graph

	fmt.Printf("\nNetwork: %d nodes, %d edges, density %.3f\n",
		graph.NodeCount(), graph.EdgeCount(), graph.Density())

	if graph.NodeCount() == 0 {
		fmt.Printf("The network is empty. Try lowering -min-mentions (currently %d).\n", minMentions)
		return
	}

	nodes := make([]string, 0, graph.NodeCount())
	for _, node := range graph.Nodes {
		nodes = append(nodes, node.Name)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if graph.Degree(nodes[i]) != graph.Degree(nodes[j]) {
			return graph.Degree(nodes[i]) > graph.Degree(nodes[j])
		}
		return nodes[i] < nodes[j]
	})

	top := nodes[:util.Min(len(nodes), 5)]
	fmt.Println("Most connected:")
	for _, name := range top {
		node, _ := graph.Node(name)
		fmt.Printf("  %-30s degree %d, full connections %d\n",
			name, graph.Degree(name), node.FullConnections)
	}

	sum := 0.0
	scored := 0
	for _, edge := range graph.Edges {
		if edge.Sentiment != nil {
			sum += *edge.Sentiment
			scored++
		}
	}
	if scored > 0 {
		fmt.Printf("Average relationship sentiment: %.3f over %d edges\n", sum/float64(scored), scored)
	}
}

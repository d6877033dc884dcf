package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"castnet/internal/util"
	"castnet/pkg/ai"
	"castnet/pkg/loader"
	s3loader "castnet/pkg/loader/s3"
	"castnet/pkg/loader/web"
	"castnet/pkg/logger"
	"castnet/pkg/network"
	"castnet/pkg/nlp"
	"castnet/pkg/store"
	storepgx "castnet/pkg/store/pgx"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyzeMsg is the payload published to the analyze queue.
type AnalyzeMsg struct {
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id"`
}

// ProcessAnalyzeMessage runs one analysis job end to end: load the source
// document, segment and annotate it, build the co-occurrence network, and
// persist the result. Any failure marks the analysis failed; no partial
// graph is ever stored.
func ProcessAnalyzeMessage(
	ctx context.Context,
	s3Client *s3.Client,
	aiClient ai.TextAIClient,
	pgConn *pgxpool.Pool,
	body string,
) error {
	var msg AnalyzeMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("invalid analyze message: %w", err)
	}

	analysisStore := storepgx.NewAnalysisDBStore(pgConn)

	analysis, err := analysisStore.GetAnalysis(ctx, msg.AnalysisID)
	if err != nil {
		return fmt.Errorf("failed to load analysis %s: %w", msg.AnalysisID, err)
	}

	if err := analysisStore.MarkRunning(ctx, analysis.ID); err != nil {
		return fmt.Errorf("failed to mark analysis running: %w", err)
	}

	result, err := runAnalysis(ctx, s3Client, aiClient, analysis)
	if err != nil {
		if markErr := analysisStore.MarkFailed(ctx, analysis.ID, err.Error()); markErr != nil {
			logger.Error("Failed to mark analysis failed", "id", analysis.ID, "err", markErr)
		}
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		if markErr := analysisStore.MarkFailed(ctx, analysis.ID, err.Error()); markErr != nil {
			logger.Error("Failed to mark analysis failed", "id", analysis.ID, "err", markErr)
		}
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := analysisStore.SaveResult(ctx, analysis.ID, resultJSON); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	logger.Info("Analysis completed",
		"id", analysis.ID,
		"sentences", result.SentenceCount,
		"nodes", result.Graph.NodeCount(),
		"edges", result.Graph.EdgeCount(),
	)

	return nil
}

func runAnalysis(
	ctx context.Context,
	s3Client *s3.Client,
	aiClient ai.TextAIClient,
	analysis *store.Analysis,
) (*network.Result, error) {
	s3Bucket := util.GetEnvString("AWS_BUCKET", "castnet")
	s3L := s3loader.NewS3DocumentLoaderWithClient(s3Bucket, s3Client)

	text, err := loadSource(ctx, s3L, analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	sentences := nlp.Segment(text)
	logger.Debug("Document segmented", "id", analysis.ID, "sentences", len(sentences))

	annotator := nlp.NewAIAnnotator(nlp.NewAIAnnotatorParams{
		Client:              aiClient,
		EntityLabels:        analysis.Options.EntityLabels,
		MaxParallelRequests: int(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
	})

	annotated, err := annotator.Annotate(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate document: %w", err)
	}

	params := network.NewNetworkClientParams{
		MinMentions:  analysis.Options.MinMentions,
		UseSentiment: analysis.Options.UseSentiment,
		EntityLabels: analysis.Options.EntityLabels,
	}
	if analysis.Options.UseSentiment {
		params.Classifier = nlp.NewAIClassifier(nlp.NewAIClassifierParams{
			Client: aiClient,
		})
	}

	client, err := network.NewNetworkClient(params)
	if err != nil {
		return nil, err
	}

	return client.BuildNetwork(ctx, annotated)
}

func loadSource(
	ctx context.Context,
	s3Loader loader.DocumentLoader,
	analysis *store.Analysis,
) (string, error) {
	switch analysis.SourceType {
	case store.SourceText:
		return analysis.Source, nil
	case store.SourceS3:
		file := loader.NewDocumentFile(loader.NewDocumentFileParams{
			ID:     analysis.ID,
			Path:   analysis.Source,
			Loader: s3Loader,
		})
		data, err := file.GetText(ctx)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case store.SourceURL:
		webLoader := web.NewWebDocumentLoader()
		file := loader.NewDocumentFile(loader.NewDocumentFileParams{
			ID:     analysis.ID,
			Path:   analysis.Source,
			Loader: webLoader,
		})
		data, err := file.GetText(ctx)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown source type: %s", analysis.SourceType)
	}
}

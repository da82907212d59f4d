//go:build ORT || ALL

package classifier

import (
	"context"
	"fmt"
	"os"

	"golang-stock-sentiment/pkg/logger"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

type finbertModel struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewFinBERTLoader returns a Loader that runs FinBERT through ONNX Runtime.
func NewFinBERTLoader(cfg FinBERTConfig, log *logger.Logger) Loader {
	return func(ctx context.Context) (Model, error) {
		modelPath := cfg.ModelPath
		if _, err := os.Stat(modelPath); modelPath == "" || os.IsNotExist(err) {
			if err := os.MkdirAll(cfg.ModelDir, os.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create model directory: %w", err)
			}
			log.Info("Model not found, downloading", logger.StringField("model", cfg.ModelName), logger.StringField("dir", cfg.ModelDir))
			downloaded, err := hugot.DownloadModel(cfg.ModelName, cfg.ModelDir, hugot.NewDownloadOptions())
			if err != nil {
				return nil, fmt.Errorf("failed to download model %s: %w", cfg.ModelName, err)
			}
			modelPath = downloaded
		}

		session, err := hugot.NewORTSession()
		if err != nil {
			return nil, fmt.Errorf("failed to create onnx session: %w", err)
		}

		pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
			ModelPath: modelPath,
			Name:      "finbertSentimentPipeline",
		})
		if err != nil {
			_ = session.Destroy()
			return nil, fmt.Errorf("failed to create text classification pipeline: %w", err)
		}

		return &finbertModel{session: session, pipeline: pipeline}, nil
	}
}

func (m *finbertModel) Predict(_ context.Context, text string) (Prediction, error) {
	out, err := m.pipeline.RunPipeline([]string{text})
	if err != nil {
		return Prediction{}, err
	}
	if len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return Prediction{}, errEmptyOutput
	}

	best := out.ClassificationOutputs[0][0]
	for _, c := range out.ClassificationOutputs[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return Prediction{Label: Label(best.Label), Confidence: float64(best.Score)}, nil
}

func (m *finbertModel) Close() error {
	return m.session.Destroy()
}

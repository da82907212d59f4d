package classifier

import (
	"errors"
	"fmt"

	"golang-stock-sentiment/pkg/logger"
)

const (
	BackendFinBERT = "finbert"
	BackendVADER   = "vader"

	DefaultFinBERTModel = "yiyanghkust/finbert-tone"
)

// FinBERTConfig locates the ONNX export of the FinBERT model.
// ModelPath wins when it exists; otherwise ModelName is downloaded into ModelDir.
type FinBERTConfig struct {
	ModelName string
	ModelPath string
	ModelDir  string
}

var errEmptyOutput = errors.New("model returned no classification")

// NewLoader returns the Loader for the named backend.
func NewLoader(backend string, cfg FinBERTConfig, log *logger.Logger) (Loader, error) {
	switch backend {
	case BackendFinBERT, "":
		if cfg.ModelName == "" {
			cfg.ModelName = DefaultFinBERTModel
		}
		return NewFinBERTLoader(cfg, log), nil
	case BackendVADER:
		return NewVADERLoader(), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", backend)
	}
}

//go:build !ORT && !ALL

package classifier

import (
	"context"
	"errors"

	"golang-stock-sentiment/pkg/logger"
)

// NewFinBERTLoader returns a Loader that always fails: ONNX Runtime support is compiled in with -tags ORT.
func NewFinBERTLoader(cfg FinBERTConfig, log *logger.Logger) Loader {
	return func(ctx context.Context) (Model, error) {
		return nil, errors.New("finbert backend requires a build with -tags ORT")
	}
}

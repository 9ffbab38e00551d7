package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"dirigeants/helper"
	"dirigeants/model"
)

const (
	labelTurkishOrigin = "nom d'origine turque"
	labelOtherOrigin   = "nom d'une autre origine"
)

// LocalClassifier creates a name-origin classifier using zero-shot
// classification with a multilingual NLI model. No API key needed; the
// model is downloaded on first use. Less accurate than the hosted
// classifier, meant as an offline fallback.
func LocalClassifier() (ClassifyFunc, error) {
	// Prepare model (download if needed)
	modelName := "MoritzLaurer/mDeBERTa-v3-base-mnli-xnli"
	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create zero-shot classification pipeline
	config := hugot.ZeroShotClassificationConfig{
		ModelPath: modelPath,
		Name:      "name-origin-pipeline",
		Options: []hugot.ZeroShotClassificationOption{
			pipelines.WithHypothesisTemplate("Ceci est un {}."),
			pipelines.WithLabels([]string{labelTurkishOrigin, labelOtherOrigin}),
		},
	}
	originPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create zero-shot pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create zero-shot pipeline: %w", err)
	}

	return func(ctx context.Context, names []model.NameQuery) ([]model.NameOrigin, error) {
		if len(names) == 0 {
			return nil, nil
		}

		inputs := make([]string, 0, len(names))
		for _, name := range names {
			inputs = append(inputs, strings.TrimSpace(name.Prenoms+" "+name.Nom))
		}

		result, err := originPipeline.RunPipeline(inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to run zero-shot classification: %w", err)
		}

		if len(result.ClassificationOutputs) != len(names) {
			return nil, fmt.Errorf("classification count mismatch: got %d outputs for %d names", len(result.ClassificationOutputs), len(names))
		}

		origins := make([]model.NameOrigin, 0, len(names))
		for i, output := range result.ClassificationOutputs {
			turkish := len(output.SortedValues) > 0 && output.SortedValues[0].Key == labelTurkishOrigin
			origins = append(origins, model.NameOrigin{
				ID:            names[i].ID,
				OrigineTurque: turkish,
			})
		}

		return origins, nil
	}, nil
}

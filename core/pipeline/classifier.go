package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"dirigeants/model"
)

const classifierSystemPrompt = `Met a jour ma liste de noms et indique si ils sont d'origine turque ou non.
Certains noms peuvent avoir des prenoms Francais apres naturalisation`

// originResultsSchema constrains the completion to the expected result list
var originResultsSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"results": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":             map[string]interface{}{"type": "string"},
					"origine_turque": map[string]interface{}{"type": "boolean"},
				},
				"required":             []string{"id", "origine_turque"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"results"},
	"additionalProperties": false,
}

// DefaultClassifier creates a classifier backed by the OpenAI chat API
// using a schema-constrained response. The whole name list goes out in a
// single request; the response is a list of {id, origine_turque} results.
func DefaultClassifier(apiKey string, modelName string) (ClassifyFunc, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return func(ctx context.Context, names []model.NameQuery) ([]model.NameOrigin, error) {
		payload, err := json.Marshal(names)
		if err != nil {
			return nil, fmt.Errorf("failed to encode name list: %w", err)
		}

		resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: shared.ChatModel(modelName),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(classifierSystemPrompt),
				openai.UserMessage(string(payload)),
			},
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
					JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
						Name:   "origine_resultats",
						Schema: originResultsSchema,
						Strict: openai.Bool(true),
					},
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run classification: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no classification choices returned")
		}

		return parseOriginResults([]byte(resp.Choices[0].Message.Content))
	}, nil
}

// parseOriginResults decodes a classification response body
func parseOriginResults(body []byte) ([]model.NameOrigin, error) {
	var out struct {
		Results []model.NameOrigin `json:"results"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}
	return out.Results, nil
}

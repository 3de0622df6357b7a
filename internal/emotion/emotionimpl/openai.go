package emotionimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/emotion"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
)

const emotionInstructions = `Classify the dominant emotion expressed in the user's text.
Answer with exactly one label: anger, disgust, fear, joy, neutral, sadness or surprise.`

type labelResponse struct {
	Label string `json:"label" jsonschema:"enum=anger,enum=disgust,enum=fear,enum=joy,enum=neutral,enum=sadness,enum=surprise"`
}

var labelSchema = generateSchema[labelResponse]()

type openAIModel struct {
	client *openai.Client
	model  string
}

var _ emotion.Model = (*openAIModel)(nil)

// NewOpenAILoader returns a loader that builds an OpenAI client and probes the
// configured model once before handing it out.
func NewOpenAILoader(cfg *config.Config) emotion.ModelLoader {
	return func(ctx context.Context) (emotion.Model, error) {
		if strings.TrimSpace(cfg.Emotion.OpenAIKey) == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}

		opts := []option.RequestOption{option.WithAPIKey(cfg.Emotion.OpenAIKey)}
		if cfg.Emotion.OpenAIURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.Emotion.OpenAIURL))
		}
		client := openai.NewClient(opts...)

		if _, err := client.Models.Get(ctx, cfg.Emotion.Model); err != nil {
			return nil, fmt.Errorf("probe model %q: %w", cfg.Emotion.Model, err)
		}

		return &openAIModel{client: &client, model: cfg.Emotion.Model}, nil
	}
}

func (m *openAIModel) Predict(ctx context.Context, text string) (string, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "EmotionLabel",
			Schema:      labelSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Single emotion label"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           m.model,
		MaxOutputTokens: openai.Int(32),
		Instructions:    openai.String(emotionInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := m.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}

	var out labelResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.OutputText())), &out); err != nil {
		return "", fmt.Errorf("decode emotion label: %w", err)
	}
	return out.Label, nil
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}

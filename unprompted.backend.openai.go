package unprompted

import (
	"context"
	"encoding/json"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIBackend is a Completer backed by the OpenAI completions endpoint.
// It is safe for concurrent use.
type OpenAIBackend struct {
	config BackendConfig
	client *openai.Client
	logger *zap.Logger
}

// NewOpenAIBackend creates a backend for the given configuration.
// A missing API key is reported when a completion is requested, not here.
func NewOpenAIBackend(config BackendConfig, logger *zap.Logger) *OpenAIBackend {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.OrgID = config.Organization
	clientConfig.HTTPClient = &http.Client{
		Timeout:   config.Timeout,
		Transport: &exchangeTransport{next: http.DefaultTransport},
	}

	return &OpenAIBackend{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

// Complete sends one completion request and returns the text of the first
// choice. Top-p is fixed at 1 and both penalties at 0.
func (b *OpenAIBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !b.config.HasAPIKey() {
		return "", NewMissingAPIKeyError()
	}

	request := openai.CompletionRequest{
		Model:            req.Model,
		Prompt:           req.Prompt,
		Temperature:      float32(req.Temperature),
		MaxTokens:        req.MaxTokens,
		TopP:             DefaultTopP,
		FrequencyPenalty: DefaultFrequencyPenalty,
		PresencePenalty:  DefaultPresencePenalty,
	}
	if req.Stop != "" {
		request.Stop = []string{req.Stop}
	}

	b.logger.Debug(LogMsgBackendRequest,
		zap.String(LogFieldModel, req.Model),
		zap.Int(LogFieldPromptLen, len(req.Prompt)))

	ex := &exchange{zeroTemperature: req.Temperature == 0}
	response, err := b.client.CreateCompletion(context.WithValue(ctx, exchangeKey{}, ex), request)
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		raw := ex.responseBody
		if len(raw) == 0 {
			raw, _ = json.Marshal(response)
		}
		return "", NewInvalidResponseError(string(raw))
	}

	text := response.Choices[0].Text
	b.logger.Debug(LogMsgBackendResponse, zap.Int(LogFieldResultLen, len(text)))
	return text, nil
}

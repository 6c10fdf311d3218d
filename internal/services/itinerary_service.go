package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tripplanbuddy/internal/config"
	"tripplanbuddy/internal/domain"
	"tripplanbuddy/internal/domain/models"
	"tripplanbuddy/internal/observability"
	"tripplanbuddy/internal/utils"
)

const (
	CompletionModel       = "gpt-4o-mini"
	CompletionTemperature = 0.7
	NoItineraryText       = "No itinerary generated."

	chatCompletionsPath = "/v1/chat/completions"
)

// KeySource yields the completion-service credential for one call.
type KeySource func() string

// ItineraryService sends one prompt per call to the chat-completion endpoint.
// It keeps no state between calls and never retries.
type ItineraryService struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     KeySource
	RequestID  string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s ItineraryService) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s ItineraryService) endpoint() string {
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if base == "" {
		base = config.DefaultOpenAIBase
	}
	return base + chatCompletionsPath
}

func (s ItineraryService) apiKey() string {
	if s.APIKey == nil {
		return config.OpenAIKey()
	}
	return strings.TrimSpace(s.APIKey())
}

// Run generates an itinerary and folds the outcome into an ItineraryResult.
func (s ItineraryService) Run(ctx context.Context, req models.TripRequest) models.ItineraryResult {
	text, err := s.Generate(ctx, req)
	if err != nil {
		return models.ItineraryResult{Error: err.Error(), Status: domain.StatusOf(err)}
	}
	return models.ItineraryResult{Itinerary: text, Status: http.StatusOK}
}

// Generate fills defaults, builds the prompt and asks the completion service for an itinerary.
func (s ItineraryService) Generate(ctx context.Context, req models.TripRequest) (string, error) {
	return s.Complete(ctx, BuildPrompt(ApplyDefaults(req)))
}

// Complete performs exactly one chat-completion call for the given prompt pair.
// A missing credential fails before any network traffic.
func (s ItineraryService) Complete(ctx context.Context, pair models.PromptPair) (string, error) {
	start := time.Now()
	ctx, span := observability.Tracer().Start(ctx, "completion.chat",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("llm.model", CompletionModel)),
	)
	defer span.End()

	key := s.apiKey()
	if key == "" {
		err := domain.ConfigurationError{Setting: config.APIKeyVar}
		s.fail(span, observability.OutcomeConfig, start, err)
		return "", err
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: CompletionModel,
		Messages: []chatMessage{
			{Role: "system", Content: pair.System},
			{Role: "user", Content: pair.User},
		},
		Temperature: CompletionTemperature,
	})
	if err != nil {
		terr := domain.TransportError{Err: err}
		s.fail(span, observability.OutcomeTransport, start, terr)
		return "", terr
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(payload))
	if err != nil {
		terr := domain.TransportError{Err: err}
		s.fail(span, observability.OutcomeTransport, start, terr)
		return "", terr
	}
	httpReq.Header.Set("Authorization", "Bearer "+key)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(httpReq)
	if err != nil {
		terr := domain.TransportError{Err: err}
		s.fail(span, observability.OutcomeTransport, start, terr)
		return "", terr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := domain.TransportError{Err: err}
		s.fail(span, observability.OutcomeTransport, start, terr)
		return "", terr
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamErrorMessage(raw)
		if msg == "" {
			msg = fmt.Sprintf("OpenAI API error (status %d). Check your API key and billing.", resp.StatusCode)
		}
		uerr := domain.UpstreamError{Status: resp.StatusCode, Msg: msg}
		s.fail(span, observability.OutcomeUpstreamError, start, uerr)
		return "", uerr
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		terr := domain.TransportError{Err: fmt.Errorf("decode completion response: %w", err)}
		s.fail(span, observability.OutcomeTransport, start, terr)
		return "", terr
	}

	text := ""
	if len(out.Choices) > 0 {
		text = out.Choices[0].Message.Content
	}
	if text == "" {
		observability.ObserveUpstream(observability.OutcomeEmpty, time.Since(start))
		utils.LogEvent(s.RequestID, "itinerary", "completion_call", "completion returned no text",
			"status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())
		return NoItineraryText, nil
	}

	observability.ObserveUpstream(observability.OutcomeSuccess, time.Since(start))
	utils.LogEvent(s.RequestID, "itinerary", "completion_call", "itinerary generated",
		"status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds(), "chars", len(text))
	return text, nil
}

func (s ItineraryService) fail(span trace.Span, outcome string, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	observability.ObserveUpstream(outcome, time.Since(start))
	utils.LogFailure(s.RequestID, "itinerary", "completion_call", err,
		"outcome", outcome, "status", domain.StatusOf(err))
}

// upstreamErrorMessage pulls error.message out of an error body. Some
// compatible gateways send "error" as a bare string.
func upstreamErrorMessage(raw []byte) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Error) == 0 {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}
	var s string
	if err := json.Unmarshal(body.Error, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

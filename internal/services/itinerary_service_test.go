package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanbuddy/internal/domain"
	"tripplanbuddy/internal/domain/models"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func staticKey(k string) KeySource { return func() string { return k } }

// fakeCompletions serves a fixed status/body and counts calls.
func fakeCompletions(t *testing.T, status int, body string, inspect func(*http.Request, chatCompletionRequest)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var in chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if inspect != nil {
			inspect(r, in)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestCompleteSendsChatRequest(t *testing.T) {
	pair := BuildPrompt(ApplyDefaults(models.TripRequest{Destination: "Kyoto"}))

	srv, calls := fakeCompletions(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"Day 1\nFushimi Inari at dawn.  "}}]}`,
		func(r *http.Request, in chatCompletionRequest) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, CompletionModel, in.Model)
			assert.InDelta(t, 0.7, in.Temperature, 1e-9)
			require.Len(t, in.Messages, 2)
			assert.Equal(t, "system", in.Messages[0].Role)
			assert.Equal(t, pair.System, in.Messages[0].Content)
			assert.Equal(t, "user", in.Messages[1].Role)
			assert.Equal(t, pair.User, in.Messages[1].Content)
		})

	svc := ItineraryService{BaseURL: srv.URL, APIKey: staticKey("sk-test")}
	text, err := svc.Complete(context.Background(), pair)

	require.NoError(t, err)
	assert.Equal(t, "Day 1\nFushimi Inari at dawn.  ", text, "first choice is returned unmodified")
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestCompleteEmptyChoices(t *testing.T) {
	for name, body := range map[string]string{
		"empty array":   `{"choices":[]}`,
		"missing":       `{}`,
		"empty content": `{"choices":[{"message":{"content":""}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := fakeCompletions(t, http.StatusOK, body, nil)
			svc := ItineraryService{BaseURL: srv.URL, APIKey: staticKey("sk-test")}

			text, err := svc.Generate(context.Background(), models.TripRequest{})
			require.NoError(t, err)
			assert.Equal(t, "No itinerary generated.", text)
		})
	}
}

func TestCompleteUpstreamErrorMessage(t *testing.T) {
	srv, _ := fakeCompletions(t, http.StatusTooManyRequests,
		`{"error":{"message":"You exceeded your current quota.","type":"insufficient_quota"}}`, nil)
	svc := ItineraryService{BaseURL: srv.URL, APIKey: staticKey("sk-test")}

	_, err := svc.Generate(context.Background(), models.TripRequest{Destination: "Rome"})
	require.Error(t, err)

	var up domain.UpstreamError
	require.True(t, errors.As(err, &up))
	assert.Equal(t, http.StatusTooManyRequests, up.Status)
	assert.Equal(t, "You exceeded your current quota.", up.Error())
	assert.Equal(t, http.StatusTooManyRequests, domain.StatusOf(err))
}

func TestCompleteUpstreamErrorWithoutMessage(t *testing.T) {
	srv, _ := fakeCompletions(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)
	svc := ItineraryService{BaseURL: srv.URL, APIKey: staticKey("sk-test")}

	res := svc.Run(context.Background(), models.TripRequest{})
	assert.True(t, res.Failed())
	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.Equal(t, "OpenAI API error (status 502). Check your API key and billing.", res.Error)
	assert.Empty(t, res.Itinerary)
}

func TestCompleteUpstreamErrorAsString(t *testing.T) {
	srv, _ := fakeCompletions(t, http.StatusUnauthorized, `{"error":"invalid api key"}`, nil)
	svc := ItineraryService{BaseURL: srv.URL, APIKey: staticKey("sk-test")}

	res := svc.Run(context.Background(), models.TripRequest{})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "invalid api key", res.Error)
}

func TestMissingKeyMakesNoCall(t *testing.T) {
	srv, calls := fakeCompletions(t, http.StatusOK, `{"choices":[]}`, nil)
	svc := ItineraryService{BaseURL: srv.URL, APIKey: staticKey("  ")}

	res := svc.Run(context.Background(), models.TripRequest{Destination: "Oslo"})

	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Missing OPENAI_API_KEY environment variable.", res.Error)

	_, err := svc.Generate(context.Background(), models.TripRequest{})
	assert.True(t, domain.IsConfiguration(err))
}

func TestCompleteTransportError(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset by peer")
		}),
	}
	svc := ItineraryService{HTTPClient: client, BaseURL: "http://upstream", APIKey: staticKey("sk-test")}

	res := svc.Run(context.Background(), models.TripRequest{})
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Contains(t, res.Error, "connection reset by peer")

	_, err := svc.Generate(context.Background(), models.TripRequest{})
	assert.True(t, domain.IsTransport(err))
}

func TestCompleteMalformedSuccessBody(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(`{"choices": [`)),
			}, nil
		}),
	}
	svc := ItineraryService{HTTPClient: client, BaseURL: "http://upstream", APIKey: staticKey("sk-test")}

	res := svc.Run(context.Background(), models.TripRequest{})
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Contains(t, res.Error, "decode completion response")
}

func TestCompleteHonoursCallerCancellation(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}),
	}
	svc := ItineraryService{HTTPClient: client, BaseURL: "http://upstream", APIKey: staticKey("sk-test")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Generate(ctx, models.TripRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEndpointDefaultsToOpenAI(t *testing.T) {
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", ItineraryService{}.endpoint())
	assert.Equal(t, "http://proxy/v1/chat/completions", ItineraryService{BaseURL: "http://proxy/"}.endpoint())
}

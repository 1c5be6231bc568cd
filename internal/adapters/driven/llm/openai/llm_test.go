package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test"})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLLMModel, svc.ModelName())
	assert.Equal(t, domain.DefaultLLMBaseURL, svc.baseURL)
	assert.Equal(t, DefaultLLMTimeout, svc.client.Timeout)
	assert.NoError(t, svc.Close())
}

func TestNewLLMService_RequiresKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})

	assert.True(t, errors.Is(err, domain.ErrLLMUnavailable))
}

func TestLLMService_Chat(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Duty of Care"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1", Model: "m"})
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}},
		driven.ChatOptions{MaxTokens: 30})

	require.NoError(t, err)
	assert.Equal(t, "Duty of Care", reply)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 30, got.MaxTokens)
	assert.Equal(t, []chatCompletionMsg{{Role: "user", Content: "hi"}}, got.Messages)
}

func TestLLMService_Chat_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"auth"}}`, "bad key"},
		{"non json", http.StatusBadGateway, "upstream down", "status 502"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no response choices"},
		{"bad json", http.StatusOK, `{`, "decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc, err := NewLLMService(LLMConfig{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = svc.Chat(context.Background(), nil, driven.ChatOptions{})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLLMService_Ping(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte("nope"))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))

	status.Store(http.StatusUnauthorized)
	assert.ErrorContains(t, svc.Ping(context.Background()), "status 401: nope")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/ai"
	"portfolio-api/internal/config"
)

// fakeCompletions stands in for the chat completions provider and records
// the last request body it saw.
func fakeCompletions(t *testing.T, content string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var lastRequest map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &lastRequest)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &lastRequest
}

func newAIAPI(t *testing.T, content string) (*API, *map[string]any) {
	t.Helper()
	srv, lastRequest := fakeCompletions(t, content)
	client := ai.New("test-key", srv.URL, "test-model")
	return NewAPI(&config.Config{Env: "development"}, nil, client), lastRequest
}

func TestAIGenerate(t *testing.T) {
	api, lastRequest := newAIAPI(t, "Generated text")

	w := doJSON(t, api, http.MethodPost, "/api/ai/generate",
		`{"prompt":"Write a bio","systemPrompt":"You are a copywriter"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Generated text", body["content"])
	assert.Equal(t, "Generated text", body["result"])

	messages, ok := (*lastRequest)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestAIGenerate_NoSystemPrompt(t *testing.T) {
	api, lastRequest := newAIAPI(t, "ok")

	w := doJSON(t, api, http.MethodPost, "/api/ai/generate", `{"prompt":"Hi"}`)

	require.Equal(t, http.StatusOK, w.Code)
	messages := (*lastRequest)["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestAIGenerate_MissingPrompt(t *testing.T) {
	api, _ := newAIAPI(t, "unused")

	w := doJSON(t, api, http.MethodPost, "/api/ai/generate", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Prompt is required", decodeBody(t, w)["error"])
}

func TestAIGenerate_MethodNotAllowed(t *testing.T) {
	api, _ := newAIAPI(t, "unused")

	w := doJSON(t, api, http.MethodGet, "/api/ai/generate", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAIGenerate_ProviderNotConfigured(t *testing.T) {
	api := newTestAPI(nil)

	w := doJSON(t, api, http.MethodPost, "/api/ai/generate", `{"prompt":"Hi"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AI Handler Failed", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestAIAnalyzeGithub(t *testing.T) {
	api, lastRequest := newAIAPI(t, "## Project Overview")

	w := doJSON(t, api, http.MethodPost, "/api/ai/analyze-github",
		`{"url":"https://github.com/example/repo"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "## Project Overview", decodeBody(t, w)["content"])

	messages := (*lastRequest)["messages"].([]any)
	require.Len(t, messages, 1)
	prompt := messages[0].(map[string]any)["content"].(string)
	assert.Contains(t, prompt, "https://github.com/example/repo")
}

func TestAIAnalyzeGithub_MissingURL(t *testing.T) {
	api, _ := newAIAPI(t, "unused")

	w := doJSON(t, api, http.MethodPost, "/api/ai/analyze-github", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "URL is required", decodeBody(t, w)["error"])
}

func TestAI_DefaultAction(t *testing.T) {
	api := newTestAPI(nil)

	w := doJSON(t, api, http.MethodGet, "/api/ai", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AI endpoint ready.", decodeBody(t, w)["result"])
}

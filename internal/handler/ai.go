// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
)

type generateRequest struct {
	Prompt       string `json:"prompt" validate:"required"`
	SystemPrompt string `json:"systemPrompt"`
}

type analyzeGithubRequest struct {
	URL string `json:"url" validate:"required"`
}

// githubAnalysisPrompt frames the repository URL for the model. The model
// infers features and stack from the URL and its own knowledge; the API
// does not crawl the repository.
const githubAnalysisPrompt = `Analyze this GitHub repository URL: %s.
Provide a professional project description in Markdown format.
Include:
- Project Overview
- Key Features (inferred from context or typical features for such projects)
- Tech Stack (inferred)
- Use professional tone.`

// handleAI proxies content generation to the configured chat completions
// provider. Responses carry the text under both "content" and "result"
// because different frontend screens read different keys.
func (a *API) handleAI(w http.ResponseWriter, r *http.Request, req apiRequest) {
	switch req.action {
	case "generate":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}

		var gen generateRequest
		parseBodyInto(r, &gen)
		if err := a.validate.Struct(gen); err != nil {
			writeError(w, http.StatusBadRequest, "Prompt is required")
			return
		}

		content, err := a.ai.Complete(r.Context(), gen.SystemPrompt, gen.Prompt)
		if err != nil {
			slog.Error("ai generate failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "AI Handler Failed",
				"details": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"content": content, "result": content})

	case "analyze-github":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w)
			return
		}

		var analyze analyzeGithubRequest
		parseBodyInto(r, &analyze)
		if err := a.validate.Struct(analyze); err != nil {
			writeError(w, http.StatusBadRequest, "URL is required")
			return
		}

		content, err := a.ai.Complete(r.Context(), "", fmt.Sprintf(githubAnalysisPrompt, analyze.URL))
		if err != nil {
			slog.Error("ai github analysis failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "AI Analysis Failed",
				"details": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"content": content, "result": content})

	default:
		writeJSON(w, http.StatusOK, map[string]any{"result": "AI endpoint ready."})
	}
}

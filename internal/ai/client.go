// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai wraps the OpenAI-compatible chat completions provider used
// for content generation and repository analysis.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("AI provider is not configured")

// Client calls an OpenAI-compatible chat completions endpoint. The
// concrete provider is selected by base URL and model name, so the same
// client serves OpenAI, Gemini-compatible gateways and local proxies.
type Client struct {
	api     openai.Client
	model   string
	enabled bool
}

// New creates a Client. With an empty API key the client is disabled and
// every call returns ErrNotConfigured.
func New(apiKey, baseURL, model string) *Client {
	if apiKey == "" {
		return &Client{enabled: false}
	}
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:   model,
		enabled: true,
	}
}

// Enabled reports whether a provider key is configured.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Complete sends an optional system prompt plus a user prompt and returns
// the first choice's content.
func (c *Client) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if !c.enabled {
		return "", ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

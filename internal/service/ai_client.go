package service

import "context"

// AIClient is the interface to the external LLM provider.
type AIClient interface {
	// Complete sends one system+user prompt pair and returns the raw
	// completion text. Transport and provider errors are returned as-is;
	// callers decide how to degrade.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CreateEmbedding generates an embedding vector for the text.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)

	// IsEnabled returns whether the client is configured and ready.
	IsEnabled() bool
}

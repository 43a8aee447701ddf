package openai

import (
	"context"
	"fmt"

	"github.com/mailsift/mailsift/internal/core"
	"github.com/mailsift/mailsift/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClient interface using OpenAI
type OpenAIClient struct {
	client         *openai.Client
	modelName      string
	maxTokens      int
	temperature    float32
	topP           float32
	maxSnippetSize int
	logger         *zap.Logger
	textProcessor  *utils.TextProcessor
	promptFormat   string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxSnippetSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:         client,
		modelName:      modelName,
		maxTokens:      maxTokens,
		temperature:    temperature,
		topP:           topP,
		maxSnippetSize: maxSnippetSize,
		logger:         logger,
		textProcessor:  textProcessor,
		promptFormat: `Analyze the following email content to determine if it is spam and if it contains an unsubscribe link.
Provide your response as a single JSON object with the following keys:
- "isSpam": boolean (true if the email is spam, false otherwise)
- "reason": string (a brief explanation for the spam classification)
- "hasUnsubscribeLink": boolean (true if an unsubscribe link is found in the snippet)
- "identifiedLink": string or null (the URL of the unsubscribe link if found, otherwise null)

Email Subject: "%s"
Email Body Snippet: "%s"

JSON Response:`,
	}
}

// ClassifyEmail classifies an email excerpt with OpenAI
func (c *OpenAIClient) ClassifyEmail(ctx context.Context, subject, snippet string) (*core.Classification, error) {
	prepared := c.textProcessor.PrepareSnippet(snippet, c.maxSnippetSize)
	prompt := fmt.Sprintf(c.promptFormat, subject, prepared)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an email spam analyst. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	classification, err := core.ParseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	c.logger.Debug("OpenAI classification complete",
		zap.String("model", c.modelName),
		zap.String("request_id", resp.ID),
		zap.Bool("is_spam", classification.IsSpam))

	return classification, nil
}

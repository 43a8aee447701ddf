package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/mailsift/mailsift/internal/core"
	"github.com/mailsift/mailsift/internal/utils"
	"go.uber.org/zap"
)

// GeminiClient is an implementation of the LLMClient interface using Google Gemini
type GeminiClient struct {
	client         *genai.Client
	model          *genai.GenerativeModel
	modelName      string
	maxSnippetSize int
	logger         *zap.Logger
	textProcessor  *utils.TextProcessor
	promptFormat   string
}

// NewGeminiClient creates a new Gemini client around an initialized genai client
func NewGeminiClient(
	client *genai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxSnippetSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *GeminiClient {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client:         client,
		model:          model,
		modelName:      modelName,
		maxSnippetSize: maxSnippetSize,
		logger:         logger,
		textProcessor:  textProcessor,
		promptFormat:   classificationPrompt,
	}
}

const classificationPrompt = `Analyze the following email content. Your task is to determine if it is spam and if it contains an unsubscribe link.
Provide your response strictly as a single JSON object. Do not add any other text before or after the JSON object.
The JSON object must have the following keys and value types:
- "isSpam": boolean (true if the email is spam, false otherwise)
- "reason": string (a brief explanation for the spam classification, or why it's not spam)
- "hasUnsubscribeLink": boolean (true if an unsubscribe link is mentioned or found in the snippet, false otherwise)
- "identifiedLink": string or null (the full URL of the unsubscribe link if found, otherwise null)

Email Subject: "%s"
Email Body Snippet: "%s"

JSON Response:`

// Close closes the underlying genai client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ClassifyEmail classifies an email excerpt with Gemini
func (c *GeminiClient) ClassifyEmail(ctx context.Context, subject, snippet string) (*core.Classification, error) {
	prepared := c.textProcessor.PrepareSnippet(snippet, c.maxSnippetSize)
	prompt := fmt.Sprintf(c.promptFormat, subject, prepared)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	classification, err := core.ParseClassification(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	c.logger.Debug("Gemini classification complete",
		zap.String("model", c.modelName),
		zap.Bool("is_spam", classification.IsSpam))

	return classification, nil
}

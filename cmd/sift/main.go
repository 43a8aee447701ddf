package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/core"
	"github.com/mailsift/mailsift/internal/factory"
	"github.com/mailsift/mailsift/internal/logging"
	"github.com/mailsift/mailsift/internal/utils"
	"go.uber.org/zap"
)

// snippetSize mirrors the length of the excerpt the mail provider returns
const snippetSize = 200

var (
	// LLM provider flags
	provider       = flag.String("provider", "gemini", "LLM provider (gemini, openai, bedrock)")
	maxTokens      = flag.Int("max-tokens", 256, "Maximum tokens for LLM response")
	temperature    = flag.Float64("temperature", 0.3, "Temperature for LLM generation")
	topP           = flag.Float64("top-p", 0.9, "Top-p for LLM generation")
	maxSnippetSize = flag.Int("max-snippet-size", 2048, "Maximum snippet size to send to LLM")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-1.5-flash", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-3.5-turbo", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	inputFile = flag.String("file", "", "Input email file (use stdin if not specified)")
	forceAI   = flag.Bool("force-ai", false, "Classify with the LLM even when the keyword gate does not fire")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := createConfigFromFlags()

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	subject := msg.Header.Get("Subject")
	from := msg.Header.Get("From")

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}
	snippet := makeSnippet(string(bodyBytes))

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", from)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Snippet: %s\n", snippet)

	// Stage one: keyword gate
	prefilter := core.NewPreFilter()
	suspected := prefilter.Suspect(subject, snippet)
	fmt.Printf("\n=== Keyword Pre-filter ===\n")
	fmt.Printf("Suspected spam: %t\n", suspected)

	if !suspected && !*forceAI {
		fmt.Println("\nKeyword gate did not fire; skipping AI analysis (use -force-ai to override).")
		return
	}

	// Stage two: LLM confirmation
	textProcessor := utils.NewTextProcessor(logger)
	llmFactory := factory.NewLLMFactory(cfg, logger, textProcessor)
	llmClient, err := llmFactory.CreateLLMClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	defer func() {
		if closer, ok := llmClient.(interface{ Close() error }); ok {
			closer.Close()
		}
	}()

	classifier := core.NewClassifier(llmClient, nil, logger, false, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	classification := classifier.Classify(ctx, core.Message{
		ID:      "cli",
		Subject: subject,
		From:    from,
		Snippet: snippet,
	})

	fmt.Printf("\n=== AI Analysis ===\n")
	fmt.Printf("Spam: %t\n", classification.IsSpam)
	fmt.Printf("Reason: %s\n", classification.Reason)
	fmt.Printf("Has unsubscribe link: %t\n", classification.HasUnsubscribeLink)
	if classification.IdentifiedLink != nil {
		fmt.Printf("Unsubscribe link: %s\n", *classification.IdentifiedLink)
	}
}

// makeSnippet reduces a full body to a provider-style excerpt
func makeSnippet(body string) string {
	collapsed := strings.Join(strings.Fields(body), " ")
	if len(collapsed) > snippetSize {
		return collapsed[:snippetSize]
	}
	return collapsed
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)

	v.Set("gemini.api_key", *geminiAPIKey)
	v.Set("gemini.model_name", *geminiModelName)
	v.Set("gemini.max_tokens", *maxTokens)
	v.Set("gemini.temperature", *temperature)
	v.Set("gemini.top_p", *topP)
	v.Set("gemini.max_snippet_size", *maxSnippetSize)

	v.Set("openai.api_key", *openaiAPIKey)
	v.Set("openai.model_name", *openaiModelName)
	v.Set("openai.max_tokens", *maxTokens)
	v.Set("openai.temperature", *temperature)
	v.Set("openai.top_p", *topP)
	v.Set("openai.max_snippet_size", *maxSnippetSize)

	v.Set("bedrock.region", *bedrockRegion)
	v.Set("bedrock.model_id", *bedrockModelID)
	v.Set("bedrock.max_tokens", *maxTokens)
	v.Set("bedrock.temperature", *temperature)
	v.Set("bedrock.top_p", *topP)
	v.Set("bedrock.max_snippet_size", *maxSnippetSize)

	return config.NewFromViper(v)
}

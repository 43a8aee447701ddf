package config

// LLMConfig represents the configuration for the LLM provider selection
type LLMConfig struct {
	Provider string
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	ListenAddress   string
	AllowedOrigins  []string
	ShutdownTimeout string
}

// GoogleConfig represents the Google OAuth client configuration
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	OpenerOrigin string
}

// AnalysisConfig represents the inbox analysis configuration
type AnalysisConfig struct {
	MaxMessages        int64
	Concurrency        int
	WhitelistedDomains []string
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey         string
	ModelName      string
	MaxTokens      int
	Temperature    float32
	TopP           float32
	MaxSnippetSize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey         string
	ModelName      string
	MaxTokens      int
	Temperature    float32
	TopP           float32
	MaxSnippetSize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region         string
	ModelID        string
	MaxTokens      int
	Temperature    float32
	TopP           float32
	MaxSnippetSize int
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:   c.GetString("server.listen_address"),
		AllowedOrigins:  c.GetStringSlice("server.allowed_origins"),
		ShutdownTimeout: c.GetString("server.shutdown_timeout"),
	}
}

// GetGoogle returns the Google OAuth configuration
func (c *Config) GetGoogle() GoogleConfig {
	return GoogleConfig{
		ClientID:     c.GetString("google.client_id"),
		ClientSecret: c.GetString("google.client_secret"),
		RedirectURL:  c.GetString("google.redirect_url"),
		OpenerOrigin: c.GetString("google.opener_origin"),
	}
}

// GetAnalysis returns the inbox analysis configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		MaxMessages:        c.GetInt64("analysis.max_messages"),
		Concurrency:        c.GetInt("analysis.concurrency"),
		WhitelistedDomains: c.GetStringSlice("analysis.whitelisted_domains"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:         c.GetString("gemini.api_key"),
		ModelName:      c.GetString("gemini.model_name"),
		MaxTokens:      c.GetInt("gemini.max_tokens"),
		Temperature:    float32(c.GetFloat64("gemini.temperature")),
		TopP:           float32(c.GetFloat64("gemini.top_p")),
		MaxSnippetSize: c.GetInt("gemini.max_snippet_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:         c.GetString("openai.api_key"),
		ModelName:      c.GetString("openai.model_name"),
		MaxTokens:      c.GetInt("openai.max_tokens"),
		Temperature:    float32(c.GetFloat64("openai.temperature")),
		TopP:           float32(c.GetFloat64("openai.top_p")),
		MaxSnippetSize: c.GetInt("openai.max_snippet_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:         c.GetString("bedrock.region"),
		ModelID:        c.GetString("bedrock.model_id"),
		MaxTokens:      c.GetInt("bedrock.max_tokens"),
		Temperature:    float32(c.GetFloat64("bedrock.temperature")),
		TopP:           float32(c.GetFloat64("bedrock.top_p")),
		MaxSnippetSize: c.GetInt("bedrock.max_snippet_size"),
	}
}

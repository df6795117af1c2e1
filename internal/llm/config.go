package llm

// Config holds all settings for the LLM client.
type Config struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMs   int
	MaxRetries  int
}

// DefaultConfig returns a Config with sensible defaults. The API key must
// still be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "https://api.openai.com",
		Model:       "gpt-3.5-turbo",
		Temperature: 0,
		MaxTokens:   2048,
		TimeoutMs:   60000,
		MaxRetries:  1,
	}
}

package llm

import (
	"os"
	"strconv"
)

const defaultEndpoint = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.2"

// Config holds connection settings for the Hugging Face Inference API.
type Config struct {
	Endpoint  string
	Token     string
	TimeoutMs int
}

// LoadConfig reads inference settings from the environment, falling back to
// the default hosted Mistral endpoint. The token is required for any real
// call but its absence is not an error here; the API will reject the request.
func LoadConfig() Config {
	cfg := Config{
		Endpoint:  defaultEndpoint,
		Token:     os.Getenv("HF_API_TOKEN"),
		TimeoutMs: 30000,
	}

	if v := os.Getenv("HF_API_URL"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("HF_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TimeoutMs = ms
		}
	}

	return cfg
}

package unprompted

import (
	"os"
	"time"
)

// BackendConfig holds the credential and endpoint of the completion
// backend. It is passed to the backend explicitly; nothing is read from
// process-wide state after construction.
type BackendConfig struct {
	// APIKey authorizes requests. An empty key fails every completion
	// with a configuration error.
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for a proxy or test server.
	// Default: the OpenAI v1 endpoint
	BaseURL string

	// Organization is sent as the OpenAI-Organization header when set.
	Organization string

	// Timeout bounds each HTTP request. Zero leaves it to the context.
	Timeout time.Duration
}

// BackendConfigFromEnv reads OPENAI_API_KEY, OPENAI_BASE_URL and
// OPENAI_ORGANIZATION
func BackendConfigFromEnv() BackendConfig {
	return BackendConfig{
		APIKey:       os.Getenv(EnvAPIKey),
		BaseURL:      os.Getenv(EnvBaseURL),
		Organization: os.Getenv(EnvOrganization),
	}
}

// HasAPIKey reports whether a credential is configured
func (c BackendConfig) HasAPIKey() bool {
	return c.APIKey != ""
}

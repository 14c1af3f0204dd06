// Package keyring provides access to the system keychain for storing API keys.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "postauto"

// ErrMissingCredential is returned when a credential is neither supplied
// explicitly nor stored in the keychain.
var ErrMissingCredential = errors.New("missing credential")

// APIKey represents a named API key stored in the keychain.
type APIKey string

const (
	// Anthropic is the keychain entry for the Anthropic API key.
	Anthropic APIKey = "anthropic-api-key"
	// OpenAI is the keychain entry for the OpenAI API key.
	OpenAI APIKey = "openai-api-key"
	// GitHub is the keychain entry for the token used to publish posts.
	GitHub APIKey = "github-token"
)

// AllAPIKeys returns all known API key types for iteration.
func AllAPIKeys() []APIKey {
	return []APIKey{Anthropic, OpenAI, GitHub}
}

// DisplayName returns a human-readable name for the API key.
func (k APIKey) DisplayName() string {
	switch k {
	case Anthropic:
		return "anthropic"
	case OpenAI:
		return "openai"
	case GitHub:
		return "github"
	default:
		return string(k)
	}
}

// EnvVar is the environment variable that overrides the keychain entry.
func (k APIKey) EnvVar() string {
	switch k {
	case Anthropic:
		return "ANTHROPIC_API_KEY"
	case OpenAI:
		return "OPENAI_API_KEY"
	case GitHub:
		return "GITHUB_TOKEN"
	default:
		return ""
	}
}

// Get retrieves an API key value from the system keychain.
func Get(apiKey APIKey) (string, error) {
	value, err := keyring.Get(serviceName, string(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to get %s from keychain: %w", apiKey.DisplayName(), err)
	}

	return value, nil
}

// Set stores an API key value in the system keychain.
func Set(apiKey APIKey, value string) error {
	if err := keyring.Set(serviceName, string(apiKey), value); err != nil {
		return fmt.Errorf("failed to set %s in keychain: %w", apiKey.DisplayName(), err)
	}

	return nil
}

// Delete removes an API key from the system keychain.
func Delete(apiKey APIKey) error {
	if err := keyring.Delete(serviceName, string(apiKey)); err != nil {
		return fmt.Errorf("failed to delete %s from keychain: %w", apiKey.DisplayName(), err)
	}

	return nil
}

// IsSet checks if an API key exists in the keychain.
func IsSet(apiKey APIKey) bool {
	_, err := keyring.Get(serviceName, string(apiKey))

	return err == nil
}

// Resolve returns explicit when non-empty and otherwise falls back to the
// keychain. Nothing in either place yields ErrMissingCredential.
func Resolve(apiKey APIKey, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	value, err := keyring.Get(serviceName, string(apiKey))
	if err != nil || value == "" {
		return "", fmt.Errorf("%w: set %s or run 'postauto config set-key %s'",
			ErrMissingCredential, apiKey.EnvVar(), apiKey.DisplayName())
	}

	return value, nil
}

// APIKeyFromServiceName maps a service name (e.g., "openai") to an APIKey.
func APIKeyFromServiceName(name string) (APIKey, error) {
	switch name {
	case "anthropic":
		return Anthropic, nil
	case "openai":
		return OpenAI, nil
	case "github":
		return GitHub, nil
	default:
		return "", fmt.Errorf("unknown service: %s", name)
	}
}

package core

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML client configuration file:
//
//	api_key: gsk-...
//	base_url: https://api.groq.com
//	timeout: 30s
//	max_retries: 3
//	headers:
//	  X-Team: search
//	query_params:
//	  tenant: [acme]
//
// All fields are optional except api_key, which may still be omitted in favor
// of the GROQ_API_KEY environment variable.
type FileConfig struct {
	APIKey      string              `yaml:"api_key"`
	BaseURL     string              `yaml:"base_url,omitempty"`
	Timeout     string              `yaml:"timeout,omitempty"`
	MaxRetries  *int                `yaml:"max_retries,omitempty"`
	Headers     map[string]string   `yaml:"headers,omitempty"`
	QueryParams map[string][]string `yaml:"query_params,omitempty"`
}

// LoadFileConfig reads and parses a YAML configuration file.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config file: %v", ErrConfig, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: parsing config file %s: %v", ErrConfig, path, err)
	}

	return &fc, nil
}

// Options translates the file contents into configuration options.
// Returns an error wrapping ErrConfig if the timeout does not parse as a
// duration.
func (fc *FileConfig) Options() ([]Option, error) {
	var opts []Option

	if fc.BaseURL != "" {
		opts = append(opts, WithBaseURL(fc.BaseURL))
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeout %q", ErrConfig, fc.Timeout)
		}
		opts = append(opts, WithTimeout(d))
	}
	if fc.MaxRetries != nil {
		opts = append(opts, WithMaxRetries(*fc.MaxRetries))
	}
	for name, value := range fc.Headers {
		opts = append(opts, WithHeader(name, value))
	}
	for key, values := range fc.QueryParams {
		opts = append(opts, WithQueryParam(key, values...))
	}

	return opts, nil
}

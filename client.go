package groq

import (
	"github.com/joho/godotenv"

	"github.com/petal-labs/groq/core"
)

// basePath prefixes every Groq API endpoint path.
const basePath = "/openai/v1"

// Client is the main entry point for interacting with the Groq API.
// Client is safe for concurrent use.
type Client struct {
	core *core.Client

	// Chat performs chat completions.
	Chat *ChatService

	// Embeddings generates text embeddings.
	Embeddings *EmbeddingsService

	// Audio performs speech synthesis and transcription.
	Audio *AudioService

	// Batches manages batch processing jobs.
	Batches *BatchService

	// Files manages uploaded files.
	Files *FileService

	// Models lists and retrieves available models.
	Models *ModelService
}

// New creates a Client authenticated with apiKey. An empty apiKey falls back
// to the GROQ_API_KEY environment variable; construction fails with an error
// wrapping core.ErrConfig if neither is present.
func New(apiKey string, opts ...core.Option) (*Client, error) {
	cfg, err := core.NewConfig(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return fromConfig(cfg), nil
}

// NewFromEnv creates a Client from the GROQ_API_KEY environment variable,
// loading a .env file from the working directory first if one exists.
func NewFromEnv(opts ...core.Option) (*Client, error) {
	// A missing .env file is not an error; the variable may be set directly.
	_ = godotenv.Load()
	return New("", opts...)
}

// NewFromConfigFile creates a Client from a YAML configuration file.
// Options passed here are applied after the file's settings and take
// precedence.
func NewFromConfigFile(path string, opts ...core.Option) (*Client, error) {
	fc, err := core.LoadFileConfig(path)
	if err != nil {
		return nil, err
	}
	fileOpts, err := fc.Options()
	if err != nil {
		return nil, err
	}
	return New(fc.APIKey, append(fileOpts, opts...)...)
}

func fromConfig(cfg *core.Config) *Client {
	c := &Client{core: core.NewClient(cfg)}
	c.Chat = &ChatService{client: c.core}
	c.Embeddings = &EmbeddingsService{client: c.core}
	c.Audio = &AudioService{client: c.core}
	c.Batches = &BatchService{client: c.core}
	c.Files = &FileService{client: c.core}
	c.Models = &ModelService{client: c.core}
	return c
}

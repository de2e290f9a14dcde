// Package groq is a typed Go client for the Groq inference API.
//
// The entry point is [Client], which groups per-domain services for chat
// completions, embeddings, audio, batches, files, and models:
//
//	client, err := groq.New(os.Getenv("GROQ_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Chat.CreateCompletion(ctx, &groq.ChatCompletionRequest{
//	    Model: "llama-3.3-70b-versatile",
//	    Messages: []groq.ChatMessage{
//	        {Role: "user", Content: "Hello"},
//	    },
//	})
//
// Every service call returns a *core.Response carrying the decoded payload,
// response headers, and status code, or an error from the taxonomy in
// [github.com/petal-labs/groq/core]: validation failures surface before any
// network activity, non-2xx responses surface as *core.APIError, and
// transient failures (429, 5xx, transport errors) are retried with
// exponential backoff before being surfaced.
//
// Request payload types mirror the Groq wire format with snake_case JSON
// fields; optional fields use pointers or omitempty so that absent values
// never appear on the wire.
package groq

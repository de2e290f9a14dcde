// Package core implements the request execution pipeline for the Groq SDK.
//
// The pipeline turns a logical [Call] (method, path, query, headers, body)
// into an HTTP exchange against the Groq API: it builds the URL, composes the
// request, runs it through the interceptor chain (authentication, telemetry,
// retry with exponential backoff), and classifies the outcome as either a
// typed [Response] or a structured error.
//
// # Client and Config
//
// A [Client] is built from an immutable [Config]:
//
//	cfg, err := core.NewConfig(os.Getenv("GROQ_API_KEY"),
//	    core.WithTimeout(30*time.Second),
//	    core.WithMaxRetries(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := core.NewClient(cfg)
//
// Configuration is validated once in [NewConfig]; there are no setters after
// construction. Client is safe for concurrent use: the only mutable state per
// call is call-local.
//
// # Executing calls
//
// [Do] executes a call and decodes the response body into the requested type:
//
//	resp, err := core.Do[ModelList](ctx, client, core.Call{
//	    Method: http.MethodGet,
//	    Path:   "/openai/v1/models",
//	})
//
// A 2xx response always yields a *Response[T]; anything else yields an error.
// Non-2xx responses surface as *[APIError] carrying the HTTP status and the
// raw body. Transport failures that exhaust the retry budget surface as
// *[APIError] with Status 0 wrapping [ErrNetwork].
//
// # Errors
//
// Errors are classified with sentinel values ([ErrConfig], [ErrValidation],
// [ErrEncode], [ErrDecode], [ErrNetwork]) suitable for errors.Is, plus the
// structured [APIError] for anything the server said.
package core

package core

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// FilePart is an in-memory file to be sent as one multipart form field.
// Content is owned by the FilePart and must not be mutated after construction.
type FilePart struct {
	Filename  string
	Content   []byte
	MediaType string // inferred from the filename extension when empty
}

// Form is an ordered collection of multipart form fields. Field order in the
// encoded payload follows the order of Add calls; some servers are
// order-sensitive.
type Form struct {
	fields []formField
}

type formField struct {
	name  string
	value string
	file  *FilePart
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a plain string field.
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file field.
func (f *Form) AddFile(name string, file FilePart) *Form {
	f.fields = append(f.fields, formField{name: name, file: &file})
	return f
}

// encode serializes the form into a multipart/form-data body and returns the
// body together with its Content-Type (which carries the boundary). A file
// field with empty content fails with an error wrapping ErrEncode.
func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if field.file == nil {
			if err := w.WriteField(field.name, field.value); err != nil {
				return nil, "", fmt.Errorf("%w: writing field %q: %v", ErrEncode, field.name, err)
			}
			continue
		}

		if len(field.file.Content) == 0 {
			return nil, "", fmt.Errorf("%w: file %q has empty content", ErrEncode, field.file.Filename)
		}

		mediaType := field.file.MediaType
		if mediaType == "" {
			mediaType = mediaTypeForFilename(field.file.Filename)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(field.name), escapeQuotes(field.file.Filename)))
		h.Set("Content-Type", mediaType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("%w: creating file part %q: %v", ErrEncode, field.name, err)
		}
		if _, err := part.Write(field.file.Content); err != nil {
			return nil, "", fmt.Errorf("%w: writing file part %q: %v", ErrEncode, field.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: closing multipart writer: %v", ErrEncode, err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

// mediaTypes maps filename extensions to media types for upload fields.
var mediaTypes = map[string]string{
	".json":  "application/json",
	".jsonl": "application/jsonl",
	".txt":   "text/plain",
	".csv":   "text/csv",
	".pdf":   "application/pdf",
	".mp3":   "audio/mpeg",
	".mp4":   "audio/mp4",
	".m4a":   "audio/mp4",
	".wav":   "audio/wav",
	".ogg":   "audio/ogg",
	".flac":  "audio/flac",
	".webm":  "audio/webm",
}

// mediaTypeForFilename infers a media type from the filename extension,
// defaulting to application/octet-stream.
func mediaTypeForFilename(filename string) string {
	if mt, ok := mediaTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

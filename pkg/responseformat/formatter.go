package responseformat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackContentType is the Content-Type of MessagePack responses
const MsgPackContentType = "application/x-msgpack"

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// ErrorResponse is the body written for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteResponse writes data with the given status code. JSON is the default
// format; MessagePack is used when the request carries format=msgpack.
// The body is encoded before the status line goes out, so an encoding
// failure becomes a 500 with an ErrorResponse and the error is returned.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	// Always set CORS header
	w.Header().Set("Access-Control-Allow-Origin", "*")

	encode := encodeJSON
	contentType := "application/json"
	if req.URL.Query().Get("format") == "msgpack" {
		encode = encodeMsgPack
		contentType = MsgPackContentType
	}

	body, err := encode(data)
	if err != nil {
		fallback, ferr := encode(ErrorResponse{Error: "internal error"})
		if ferr != nil {
			return fmt.Errorf("encoding response: %w", errors.Join(err, ferr))
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(fallback)
		return fmt.Errorf("encoding response: %w", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// WriteError writes message as an ErrorResponse in the requested format
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, message string) error {
	return f.WriteResponse(w, req, status, ErrorResponse{Error: message})
}

func encodeJSON(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeMsgPack(data any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := msgpack.NewEncoder(&buf)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	if err := encoder.Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const codecName = "json"

// JSONCodec marshals plain Go structs with encoding/json. It replaces
// Connect's default protojson codec, which only handles protobuf messages.
type JSONCodec struct {
	name string
}

var _ connect.Codec = JSONCodec{}

// Name returns the codec name used in the Content-Type header.
func (c JSONCodec) Name() string {
	if c.name == "" {
		return codecName
	}
	return c.name
}

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// handlerOptions puts the JSON codec ahead of caller-supplied options.
// Browsers may send "application/json; charset=utf-8", which Connect treats as
// a distinct codec name.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithCodec(JSONCodec{name: codecName + "; charset=utf-8"}),
	}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// jsonOnly answers 415 for request bodies in any codec but JSON. Connect
// always registers its protobuf codec, which cannot decode the plain api
// structs, so those requests are turned away before they reach it.
// Requests without a Content-Type are left for Connect to judge.
func jsonOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if contentType != "" && !isJSONContentType(contentType) {
			w.Header().Set("Accept-Post", "application/json, application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isJSONContentType accepts application/json and the Connect, gRPC and
// gRPC-Web "+json" variants.
func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

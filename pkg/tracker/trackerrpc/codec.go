package trackerrpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// Codec moves the handwritten messages as JSON. Clients request it per call
// via grpc.ForceCodec; the server side resolves it from the registry below by
// the content-subtype the client sends.
type Codec struct{}

// Name reports the codec's content-subtype.
func (Codec) Name() string { return "gazejson" }

func (Codec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func init() {
	encoding.RegisterCodec(Codec{})
}

func errUnimplemented(method string) error {
	return status.Error(codes.Unimplemented, fmt.Sprintf("method %s not implemented", method))
}

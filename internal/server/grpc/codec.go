package grpc

import (
	"encoding/json"
	"google.golang.org/grpc/encoding"
)

const codecName = "json"

// jsonCodec carries the plain Go request and response structs over gRPC.
type jsonCodec struct{}

var _ encoding.Codec = jsonCodec{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

// Package wire converts between WebSocket payloads and game events and
// frames. Every message is a google.protobuf.Struct with a "type" key,
// carried either in proto binary form or as protojson text.
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrUnknownCodec = errors.New("unknown codec")

// Codec turns envelopes into payloads and back.
type Codec interface {
	Name() string
	// Text reports whether payloads go in text frames.
	Text() bool
	Marshal(msg *structpb.Struct) ([]byte, error)
	Unmarshal(data []byte) (*structpb.Struct, error)
}

// Binary is the proto wire format.
type Binary struct{}

func (Binary) Name() string { return "binary" }

func (Binary) Text() bool { return false }

func (Binary) Marshal(msg *structpb.Struct) ([]byte, error) { return proto.Marshal(msg) }

func (Binary) Unmarshal(data []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// JSON is plain JSON objects, which is what the browser client speaks.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Text() bool { return true }

func (JSON) Marshal(msg *structpb.Struct) ([]byte, error) { return protojson.Marshal(msg) }

func (JSON) Unmarshal(data []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	if err := protojson.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Lookup returns the codec called name.
func Lookup(name string) (Codec, error) {
	switch name {
	case "binary":
		return Binary{}, nil
	case "json":
		return JSON{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

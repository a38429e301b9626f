// Package stormcodec exposes the serialization formats supported for the
// CampusConnect database file, selectable by name from the configuration.
package stormcodec

import (
	"bytes"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	ugorji "github.com/ugorji/go/codec"
)

// Default is the codec used when the configuration does not pick one.
var Default = codec.MarshalUnmarshaler(msgpack.Codec)

// ByName returns the codec registered under the given name.
// An empty or unknown name falls back to the default codec.
func ByName(name string) codec.MarshalUnmarshaler {
	switch name {
	case "cbor":
		return CBOR
	case "binc":
		return Binc
	case "msgpack":
		return msgpack.Codec
	}
	return Default
}

// CBOR encodes to and decodes from Concise Binary Object Representation.
// https://tools.ietf.org/html/rfc7049
var CBOR = ugorjiCodec{name: "cbor", handle: new(ugorji.CborHandle)}

// Binc encodes to and decodes from the binc format.
// https://github.com/ugorji/binc
var Binc = ugorjiCodec{name: "binc", handle: new(ugorji.BincHandle)}

type ugorjiCodec struct {
	name   string
	handle ugorji.Handle
}

func (c ugorjiCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := ugorji.NewEncoder(&b, c.handle).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c ugorjiCodec) Unmarshal(b []byte, v any) error {
	return ugorji.NewDecoder(bytes.NewReader(b), c.handle).Decode(v)
}

func (c ugorjiCodec) Name() string {
	return c.name
}

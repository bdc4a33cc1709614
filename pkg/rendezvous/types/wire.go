package types

import (
	"errors"

	"github.com/jabolina/rendezvous/pkg/rendezvous/wire"
)

// ErrUnknownRequestType is returned by DecodeRequest when the frame's type
// tag is neither ASK_INFO nor POST_INFO: unknown tags are rejected rather
// than silently defaulted.
var ErrUnknownRequestType = errors.New("types: unknown request type tag")

// Encode serializes the Endpoint to its 8-byte wire form.
func (e Endpoint) Encode() [wire.EndpointSize]byte {
	return wire.EncodeEndpoint(e.IP, e.PrivatePort, e.PublicPort)
}

// DecodeEndpoint parses an 8-byte wire frame into an Endpoint.
func DecodeEndpoint(b []byte) (Endpoint, error) {
	ip, priv, pub, err := wire.DecodeEndpoint(b)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{IP: ip, PrivatePort: priv, PublicPort: pub}, nil
}

// Encode serializes the Request to its 12-byte wire form.
func (r Request) Encode() [wire.RequestSize]byte {
	return wire.EncodeRequest(uint32(r.Type), r.Entry.IP, r.Entry.PrivatePort, r.Entry.PublicPort)
}

// DecodeRequest parses a 12-byte wire frame into a Request, rejecting any
// type tag outside {ASK_INFO, POST_INFO}.
func DecodeRequest(b []byte) (Request, error) {
	tag, ip, priv, pub, err := wire.DecodeRequest(b)
	if err != nil {
		return Request{}, err
	}
	rt := RequestType(tag)
	if rt != AskInfo && rt != PostInfo {
		return Request{}, ErrUnknownRequestType
	}
	return Request{Type: rt, Entry: Endpoint{IP: ip, PrivatePort: priv, PublicPort: pub}}, nil
}

// Package wire implements a fixed-layout binary encoding: an 8-byte
// Endpoint and a 12-byte Request, no padding, all multi-byte integers in
// network byte order, re-expressed as an explicit encode/decode pair
// instead of a type-punned struct.
package wire

import (
	"encoding/binary"
	"errors"
)

// EndpointSize is the exact wire size of an Endpoint frame.
const EndpointSize = 8

// RequestSize is the exact wire size of a Request frame. The type tag is
// carried as a 32-bit big-endian value, so its low byte sits at offset 3.
const RequestSize = 12

// ErrShortFrame is returned when a buffer is not exactly the expected size.
// Frames of unexpected length must be rejected outright, never partially
// parsed.
var ErrShortFrame = errors.New("wire: frame is not the expected size")

// EncodeEndpoint writes an 8-byte Endpoint frame.
func EncodeEndpoint(ip uint32, privatePort, publicPort uint16) [EndpointSize]byte {
	var buf [EndpointSize]byte
	binary.BigEndian.PutUint32(buf[0:4], ip)
	binary.BigEndian.PutUint16(buf[4:6], privatePort)
	binary.BigEndian.PutUint16(buf[6:8], publicPort)
	return buf
}

// DecodeEndpoint parses an 8-byte Endpoint frame. It returns ErrShortFrame
// for any input that is not exactly EndpointSize bytes: sizes are compared
// exactly, never accepted as "at least".
func DecodeEndpoint(b []byte) (ip uint32, privatePort, publicPort uint16, err error) {
	if len(b) != EndpointSize {
		return 0, 0, 0, ErrShortFrame
	}
	ip = binary.BigEndian.Uint32(b[0:4])
	privatePort = binary.BigEndian.Uint16(b[4:6])
	publicPort = binary.BigEndian.Uint16(b[6:8])
	return ip, privatePort, publicPort, nil
}

// EncodeRequest writes a 12-byte Request frame: a 32-bit type tag followed
// by an 8-byte Endpoint.
func EncodeRequest(requestType uint32, ip uint32, privatePort, publicPort uint16) [RequestSize]byte {
	var buf [RequestSize]byte
	binary.BigEndian.PutUint32(buf[0:4], requestType)
	endpoint := EncodeEndpoint(ip, privatePort, publicPort)
	copy(buf[4:12], endpoint[:])
	return buf
}

// DecodeRequest parses a 12-byte Request frame. Any length other than
// RequestSize is rejected; an unrecognized type tag is left for the caller
// to reject, since the set of valid tags lives in the types package, not
// here, to avoid an import cycle between wire and types.
func DecodeRequest(b []byte) (requestType uint32, ip uint32, privatePort, publicPort uint16, err error) {
	if len(b) != RequestSize {
		return 0, 0, 0, 0, ErrShortFrame
	}
	requestType = binary.BigEndian.Uint32(b[0:4])
	ip, privatePort, publicPort, err = DecodeEndpoint(b[4:12])
	return requestType, ip, privatePort, publicPort, err
}

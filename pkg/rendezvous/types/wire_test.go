package types

import "testing"

func TestRequestEncodeDecodeRoundTrip(t *testing.T) {
	for _, rt := range []RequestType{AskInfo, PostInfo} {
		req := Request{Type: rt, Entry: Endpoint{IP: 0x0a000001, PrivatePort: 1111, PublicPort: 2222}}
		frame := req.Encode()

		got, err := DecodeRequest(frame[:])
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rt, err)
		}
		if got != req {
			t.Fatalf("%s: got %+v, want %+v", rt, got, req)
		}
	}
}

func TestDecodeRequestRejectsUnknownTag(t *testing.T) {
	req := Request{Type: RequestType(99), Entry: Endpoint{PublicPort: 1}}
	frame := req.Encode()

	if _, err := DecodeRequest(frame[:]); err != ErrUnknownRequestType {
		t.Fatalf("err = %v, want ErrUnknownRequestType", err)
	}
}

func TestEndpointEncodeDecodeRoundTrip(t *testing.T) {
	ep := Endpoint{IP: 0x7f000001, PrivatePort: 3333, PublicPort: 4444}
	frame := ep.Encode()

	got, err := DecodeEndpoint(frame[:])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ep {
		t.Fatalf("got %+v, want %+v", got, ep)
	}
}

func TestRequestTypeString(t *testing.T) {
	cases := map[RequestType]string{
		AskInfo:         "ASK_INFO",
		PostInfo:        "POST_INFO",
		RequestType(42): "UNKNOWN(42)",
	}
	for rt, want := range cases {
		if got := rt.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}

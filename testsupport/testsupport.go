// Package testsupport holds the tear-off client helpers integration tests
// use to talk to a coordinator the same way a real server/client pair
// would: encoding POST/ASK frames and sending them over UDP or TCP. These
// helpers have no production callers; they exist only so
// pkg/rendezvous/core's integration tests can drive the coordinator
// end-to-end.
package testsupport

import (
	"io"
	"net"
	"time"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

// PostUDP sends a POST_INFO datagram for publicPort from a UDP socket
// bound to localAddr (empty string picks an ephemeral port), returning the
// socket so the caller can keep listening on it for a server notification.
func PostUDP(coordinatorAddr string, localAddr string, publicPort uint16) (*net.UDPConn, error) {
	conn, err := dialUDP(coordinatorAddr, localAddr)
	if err != nil {
		return nil, err
	}
	req := types.Request{Type: types.PostInfo, Entry: types.Endpoint{PublicPort: publicPort}}
	frame := req.Encode()
	if _, err := conn.Write(frame[:]); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// AskUDP sends an ASK_INFO datagram for (serverIP, publicPort) and waits
// up to timeout for the coordinator's reply, returning the decoded
// Endpoint.
func AskUDP(coordinatorAddr string, localAddr string, serverIP uint32, publicPort uint16, timeout time.Duration) (types.Endpoint, error) {
	conn, err := dialUDP(coordinatorAddr, localAddr)
	if err != nil {
		return types.Endpoint{}, err
	}
	defer conn.Close()

	req := types.Request{Type: types.AskInfo, Entry: types.Endpoint{IP: serverIP, PublicPort: publicPort}}
	frame := req.Encode()
	if _, err := conn.Write(frame[:]); err != nil {
		return types.Endpoint{}, err
	}

	conn.SetReadDeadline(time.Now().Add(timeout))
	buf := make([]byte, 8)
	n, err := io.ReadFull(conn, buf)
	if err != nil {
		return types.Endpoint{}, err
	}
	return types.DecodeEndpoint(buf[:n])
}

// PostTCP opens a TCP connection to the coordinator and sends a POST_INFO
// frame over it, returning the live connection so the caller can read a
// server notification off the same socket.
func PostTCP(coordinatorAddr string, publicPort uint16) (net.Conn, error) {
	conn, err := net.Dial("tcp", coordinatorAddr)
	if err != nil {
		return nil, err
	}
	req := types.Request{Type: types.PostInfo, Entry: types.Endpoint{PublicPort: publicPort}}
	frame := req.Encode()
	if _, err := conn.Write(frame[:]); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// ReadNotification reads one 8-byte Endpoint frame off conn with a
// deadline, used to observe the server-side notification on an ASK hit.
func ReadNotification(conn net.Conn, timeout time.Duration) (types.Endpoint, error) {
	conn.SetReadDeadline(time.Now().Add(timeout))
	buf := make([]byte, 8)
	n, err := io.ReadFull(conn, buf)
	if err != nil {
		return types.Endpoint{}, err
	}
	return types.DecodeEndpoint(buf[:n])
}

func dialUDP(remote, local string) (*net.UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp", remote)
	if err != nil {
		return nil, err
	}
	var laddr *net.UDPAddr
	if local != "" {
		laddr, err = net.ResolveUDPAddr("udp", local)
		if err != nil {
			return nil, err
		}
	}
	return net.DialUDP("udp", laddr, raddr)
}

package core

import (
	"encoding/binary"
	"net"
)

// Go's net package always hands back port numbers already converted to a
// plain decimal int (it does the ntohs conversion for you), and expects a
// plain decimal int back when building addresses to dial or reply to. The
// wire codec is what's responsible for laying those numbers out in network
// (big-endian) byte order on the wire; the port value itself never needs
// swapping in Go. Only the IP helpers below do a real conversion, between
// net.IP and the uint32 the table stores; the port helpers are plain casts
// between int and uint16.

// ipToUint32 reads an IPv4 address's four bytes as a big-endian uint32,
// matching the raw value the OS address API produces.
func ipToUint32(ip net.IP) uint32 {
	v4 := ip.To4()
	if v4 == nil {
		return 0
	}
	return binary.BigEndian.Uint32(v4)
}

// uint32ToIP is ipToUint32's inverse.
func uint32ToIP(v uint32) net.IP {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, v)
	return ip
}

// hostPortToNetwork converts the plain port number net.UDPAddr.Port /
// net.TCPAddr.Port expose into the uint16 stored in Endpoint fields. No
// byte-swap is needed: the wire codec's BigEndian encoding is what gives
// this value the correct on-the-wire byte order.
func hostPortToNetwork(p int) uint16 {
	return uint16(p)
}

// portToHost is hostPortToNetwork's inverse.
func portToHost(p uint16) int {
	return int(p)
}

package core

import (
	"context"
	"net"
	"strconv"
	"syscall"
)

// listenTCPReusable binds a TCP listener on port, setting SO_REUSEADDR and
// SO_REUSEPORT before bind(2) so the stream socket can rebind quickly after
// a restart. Plain net.Listen has no hook for setsockopt before bind, so
// this goes through net.ListenConfig's Control callback instead.
func listenTCPReusable(port int) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				if e := syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); e != nil {
					ctrlErr = e
					return
				}
				// SO_REUSEPORT is best-effort: some platforms don't define
				// it, and its absence should not be a fatal bind failure.
				_ = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEPORT, 1)
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}
	return lc.Listen(context.Background(), "tcp", ":"+strconv.Itoa(port))
}

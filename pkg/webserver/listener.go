// listener.go - raw TCP bind matching spec.md §6's network surface
//
// net.Listen alone does not expose SO_REUSEADDR or a chosen backlog, so
// the socket is built with golang.org/x/sys/unix the way the original
// implementation calls socket/setsockopt/bind/listen directly, then
// wrapped as a stdlib net.Listener via net.FileListener so the rest of
// the dispatcher can use ordinary net.Conn. golang.org/x/sys is already
// an indirect dependency of this corpus's teacher stack (pulled in by
// golang.org/x/net); this promotes it to a direct, exercised one.
package webserver

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listenBacklog mirrors spec.md §6: "listens with backlog 10".
const listenBacklog = 10

// listenRaw binds INADDR_ANY:port with SO_REUSEADDR and the backlog the
// spec documents. Socket/setsockopt/bind/listen failures are all fatal
// per spec.md §7's transport/dispatch error taxon.
func listenRaw(port int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setsockopt: %w", err)
	}

	addr := unix.SockaddrInet4{Port: port}
	if err := unix.Bind(fd, &addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind: %w", err)
	}

	if err := unix.Listen(fd, listenBacklog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen: %w", err)
	}

	file := os.NewFile(uintptr(fd), fmt.Sprintf("webbubble-listener-%d", port))
	listener, err := net.FileListener(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("wrapping listener: %w", err)
	}
	// net.FileListener dup()s the fd internally; the original is no
	// longer needed once wrapped.
	file.Close()

	return listener, nil
}

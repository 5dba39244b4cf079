package ports

import (
	"fmt"
	"net"
)

// scanLimit bounds how far Reserve walks past the requested port.
const scanLimit = 64

func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("listen: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// Reserve returns start if it is free, else the next free port after it.
// start 0 asks the kernel for any free port.
func Reserve(start int) (int, error) {
	if start == 0 {
		return FindFreePort()
	}
	for p := start; p < start+scanLimit && p <= 65535; p++ {
		if IsFree(p) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("no free port in %d-%d", start, start+scanLimit-1)
}

func IsFree(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

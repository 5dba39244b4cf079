package ports

import (
	"fmt"
	"net"
	"testing"
)

func TestReserveSkipsBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	busy := ln.Addr().(*net.TCPAddr).Port

	if IsFree(busy) {
		t.Fatalf("port %d reported free while listening", busy)
	}
	got, err := Reserve(busy)
	if err != nil {
		t.Fatal(err)
	}
	if got == busy {
		t.Fatalf("Reserve returned the busy port %d", busy)
	}
	if got < busy || got >= busy+scanLimit {
		t.Fatalf("Reserve(%d) = %d, want within the scan window", busy, got)
	}
}

func TestReserveZeroPicksAnyPort(t *testing.T) {
	p, err := Reserve(0)
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", p))
	if err != nil {
		t.Fatalf("reserved port %d not usable: %v", p, err)
	}
	ln.Close()
}

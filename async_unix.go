//go:build linux

package komparu

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// notifier abstracts the completion signal an AsyncHandle exposes as a
// pollable file descriptor.
type notifier interface {
	fd() int
	signal() error
	Close() error
}

// eventfdNotifier uses a Linux eventfd: one 8-byte write makes the fd
// readable, exactly the "write one byte on completion" contract, at the
// cost of always writing a full uint64 rather than a literal byte.
type eventfdNotifier struct {
	efd int
}

func newNotifier() (notifier, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &eventfdNotifier{efd: fd}, nil
}

func (n *eventfdNotifier) fd() int { return n.efd }

func (n *eventfdNotifier) signal() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(n.efd, buf[:])
	return err
}

func (n *eventfdNotifier) Close() error {
	return unix.Close(n.efd)
}

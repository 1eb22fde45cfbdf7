//go:build !linux

package komparu

import "os"

// notifier abstracts the completion signal an AsyncHandle exposes as a
// pollable file descriptor.
type notifier interface {
	fd() int
	signal() error
	Close() error
}

// pipeNotifier falls back to a plain pipe where eventfd is unavailable:
// one byte written to the write end makes the read end's fd readable.
type pipeNotifier struct {
	r, w *os.File
}

func newNotifier() (notifier, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &pipeNotifier{r: r, w: w}, nil
}

func (n *pipeNotifier) fd() int { return int(n.r.Fd()) }

func (n *pipeNotifier) signal() error {
	_, err := n.w.Write([]byte{1})
	return err
}

func (n *pipeNotifier) Close() error {
	werr := n.w.Close()
	rerr := n.r.Close()
	if werr != nil {
		return werr
	}
	return rerr
}

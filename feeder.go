package treedom

import "io"

// feeder adapts the push-style Feed API to the pull-style io.Reader
// the external tokenizers consume. The tokenizer goroutine is the only
// caller of Read; the controller goroutine is the only sender on in.
//
// Protocol: whenever Read runs out of bytes it sends one token on
// requests and then blocks receiving the next chunk. The controller
// treats a receive on requests as "the engine has consumed every
// complete token currently available" and returns from Feed. Closing
// in drives end-of-input. Because the engine only runs while a
// Feed/Finish call is blocked on it, no work happens in the
// background between calls.
type feeder struct {
	in       chan []byte
	requests chan struct{}

	// owned by the engine goroutine
	pending []byte
	eof     bool
}

func newFeeder() *feeder {
	return &feeder{
		in:       make(chan []byte),
		requests: make(chan struct{}),
	}
}

func (f *feeder) Read(p []byte) (int, error) {
	for len(f.pending) == 0 {
		if f.eof {
			return 0, io.EOF
		}
		f.requests <- struct{}{}
		chunk, ok := <-f.in
		if !ok {
			f.eof = true
			return 0, io.EOF
		}
		f.pending = chunk
	}
	n := copy(p, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

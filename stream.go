package mergefs

import (
	"io"
	"os"
)

// ReadStream is a live byte stream together with the backend that produced
// it, so callers can keep performing identity checks against the serving
// backend. The binding is per stream; there is no process-wide record of
// the last stream constructor used.
type ReadStream struct {
	io.ReadCloser
	backend Backend
	name    string
}

// Backend returns the backend that produced the stream.
func (s *ReadStream) Backend() Backend { return s.backend }

// Name returns the path the stream was opened for.
func (s *ReadStream) Name() string { return s.name }

// WriteStream is the write-direction counterpart of ReadStream.
type WriteStream struct {
	io.WriteCloser
	backend Backend
	name    string
}

// Backend returns the backend that produced the stream.
func (s *WriteStream) Backend() Backend { return s.backend }

// Name returns the path the stream was opened for.
func (s *WriteStream) Name() string { return s.name }

// CreateReadStream tries readable entries in priority order and returns a
// stream from the first entry that exists-checks successfully (where the
// backend provides an existence check) and produces a live stream. On total
// failure only the last encountered failure is surfaced; no chain is
// constructed here.
func (u *FS) CreateReadStream(name string) (*ReadStream, error) {
	name = cleanPath(name)

	entries := u.snapshot()
	if len(entries) == 0 {
		return nil, opError("createreadstream", name, ErrNoBackends)
	}

	var lastErr error
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if !a.readable {
			continue
		}
		if a.readStream == nil {
			lastErr = opError("createreadstream", name, ErrUnsupported)
			continue
		}
		if a.exists != nil {
			ok, err := a.exists(name)
			if err != nil {
				lastErr = err
				continue
			}
			if !ok {
				lastErr = opError("createreadstream", name, os.ErrNotExist)
				continue
			}
		}
		rc, err := a.readStream(name)
		if err != nil {
			lastErr = err
			continue
		}
		if rc == nil {
			continue
		}
		return &ReadStream{ReadCloser: rc, backend: a.backend, name: name}, nil
	}

	if lastErr == nil {
		lastErr = opError("createreadstream", name, ErrOperationFailed)
	}
	return nil, lastErr
}

// CreateWriteStream tries writable entries in priority order and returns a
// stream from the first entry that produces one. Failure policy matches
// CreateReadStream.
func (u *FS) CreateWriteStream(name string) (*WriteStream, error) {
	name = cleanPath(name)

	entries := u.snapshot()
	if len(entries) == 0 {
		return nil, opError("createwritestream", name, ErrNoBackends)
	}

	var lastErr error
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if !a.writable {
			continue
		}
		if a.writeStream == nil {
			lastErr = opError("createwritestream", name, ErrUnsupported)
			continue
		}
		wc, err := a.writeStream(name)
		if err != nil {
			lastErr = err
			continue
		}
		if wc == nil {
			continue
		}
		return &WriteStream{WriteCloser: wc, backend: a.backend, name: name}, nil
	}

	if lastErr == nil {
		lastErr = opError("createwritestream", name, ErrOperationFailed)
	}
	return nil, lastErr
}

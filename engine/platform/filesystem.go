package platform

import (
	"io"
	"os"
)

// Request is a single asynchronous I/O task. Await is the suspension point
// of resource operations: it parks the calling worker goroutine until the
// task signals completion.
//
// A finished request is in one of three states: completed (Completed true),
// faulted (Err non-nil), or indeterminate (neither) — it stopped without
// reporting why. Consumers must branch on all three.
type Request interface {
	Await()
	Completed() bool
	Err() error
	Data() []byte
}

// File is an open, writable stream. Write and Sync are asynchronous; Close
// releases the handle and must be called on every path.
type File interface {
	BeginWrite(p []byte) Request
	BeginSync() Request
	Close() error
}

// FileSystem is the storage collaborator of the resource layer. BeginRead
// and Create report open/create failures synchronously; everything after
// that flows through Requests.
type FileSystem interface {
	Exists(path string) bool
	BeginRead(path string) (Request, error)
	Create(path string) (File, error)
}

// IORequest is the concrete Request used by DiskFS. Exposed so tests and
// alternative FileSystem implementations can drive the same state machine.
type IORequest struct {
	done      chan struct{}
	data      []byte
	completed bool
	err       error
}

func NewIORequest() *IORequest {
	return &IORequest{done: make(chan struct{})}
}

// Finish resolves the request: completed when err is nil, faulted otherwise.
func (r *IORequest) Finish(data []byte, err error) {
	r.data = data
	r.err = err
	r.completed = err == nil
	close(r.done)
}

// Abandon resolves the request without a result or a fault, leaving it
// indeterminate.
func (r *IORequest) Abandon() {
	close(r.done)
}

func (r *IORequest) Await() {
	<-r.done
}

func (r *IORequest) Completed() bool {
	return r.completed
}

func (r *IORequest) Err() error {
	return r.err
}

func (r *IORequest) Data() []byte {
	return r.data
}

// DiskFS implements FileSystem on the local disk.
type DiskFS struct{}

func NewDiskFS() *DiskFS {
	return &DiskFS{}
}

func (fs *DiskFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (fs *DiskFS) BeginRead(path string) (Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	req := NewIORequest()
	go func() {
		defer f.Close()
		buf, err := io.ReadAll(f)
		req.Finish(buf, err)
	}()
	return req, nil
}

func (fs *DiskFS) Create(path string) (File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &diskFile{f: f}, nil
}

type diskFile struct {
	f *os.File
}

func (df *diskFile) BeginWrite(p []byte) Request {
	req := NewIORequest()
	go func() {
		_, err := df.f.Write(p)
		req.Finish(nil, err)
	}()
	return req
}

func (df *diskFile) BeginSync() Request {
	req := NewIORequest()
	go func() {
		req.Finish(nil, df.f.Sync())
	}()
	return req
}

func (df *diskFile) Close() error {
	return df.f.Close()
}

// Package documents persists typed values as JSON documents on disk,
// loaded and saved asynchronously on the job system.
package documents

import (
	"encoding/json"
	"fmt"

	"github.com/spaghettifunk/vivace/engine/jobs"
	"github.com/spaghettifunk/vivace/engine/platform"
)

// envelope wraps the stored value under a single named field so primitives
// and collections round-trip uniformly.
type envelope[T any] struct {
	Content T `json:"content"`
}

// Store binds a typed value to a backing file. The value reflects the last
// successful load or save; failed loads clear it to the zero value, which
// callers must treat as "unknown", not as data. The one exception is a
// strict load against a missing file, which leaves the previous value
// untouched.
//
// A Store provides no mutual exclusion: overlapping operations on the same
// store are a caller error. Serialize them, e.g. by chaining callbacks.
type Store[T any] struct {
	jobs     *jobs.System
	fs       platform.FileSystem
	location string
	value    T
}

func NewStore[T any](js *jobs.System, fs platform.FileSystem, location string) *Store[T] {
	return &Store[T]{
		jobs:     js,
		fs:       fs,
		location: location,
	}
}

func (s *Store[T]) Location() string {
	return s.location
}

func (s *Store[T]) Value() T {
	return s.value
}

func (s *Store[T]) SetValue(v T) {
	s.value = v
}

func (s *Store[T]) reset() {
	var zero T
	s.value = zero
}

/**
 * @brief Loads the document, failing if the backing file does not exist.
 *
 * Exactly one of onComplete/onError fires. The value is assigned strictly
 * before onComplete so the callback always observes the loaded state; a nil
 * onError swallows failures apart from a log line.
 */
func (s *Store[T]) LoadStrict(onComplete func(), onError func(message string)) error {
	return s.submit(s.loadStrict, onComplete, onError)
}

/**
 * @brief Loads the document, first creating and persisting a zero value if
 * the backing file does not exist. Even the create path ends by reading
 * back from disk, so the in-memory value matches exactly what persisted.
 */
func (s *Store[T]) LoadOrInit(onComplete func(), onError func(message string)) error {
	return s.submit(func() error {
		if !s.fs.Exists(s.location) {
			s.reset()
			if err := s.save(); err != nil {
				return err
			}
		}
		return s.loadStrict()
	}, onComplete, onError)
}

/**
 * @brief Serializes the value and writes it to the backing file. The file
 * handle is released on every exit path; the value itself is never mutated.
 */
func (s *Store[T]) Save(onComplete func(), onError func(message string)) error {
	return s.submit(s.save, onComplete, onError)
}

func (s *Store[T]) submit(entry func() error, onComplete func(), onError func(string)) error {
	var onFail func(error)
	if onError != nil {
		onFail = func(err error) {
			onError(err.Error())
		}
	}
	return s.jobs.Submit(jobs.NewJob(jobs.TypeResourceLoad, jobs.PriorityNormal, entry, onComplete, onFail))
}

func (s *Store[T]) loadStrict() error {
	if !s.fs.Exists(s.location) {
		// The missing-file branch leaves the previous value in place.
		return fmt.Errorf("File: %s does not exist!", s.location)
	}

	req, err := s.fs.BeginRead(s.location)
	if err != nil {
		s.reset()
		return err
	}
	req.Await()

	if err := req.Err(); err != nil {
		s.reset()
		return err
	}
	if !req.Completed() {
		s.reset()
		return fmt.Errorf("failed to read from file: %s", s.location)
	}

	var env envelope[T]
	if err := json.Unmarshal(req.Data(), &env); err != nil {
		s.reset()
		return fmt.Errorf("failed to decode %s: %s", s.location, err.Error())
	}
	s.value = env.Content
	return nil
}

func (s *Store[T]) save() error {
	// Serialize before touching the file so a codec failure leaves nothing open.
	text, err := json.MarshalIndent(envelope[T]{Content: s.value}, "", "  ")
	if err != nil {
		return err
	}

	f, err := s.fs.Create(s.location)
	if err != nil {
		return err
	}

	write := f.BeginWrite(text)
	write.Await()
	if err := write.Err(); err != nil {
		f.Close()
		return err
	}
	if !write.Completed() {
		f.Close()
		return fmt.Errorf("unable to write to file: %s", s.location)
	}

	flush := f.BeginSync()
	flush.Await()
	// The handle is released before any flush outcome is reported.
	f.Close()
	if err := flush.Err(); err != nil {
		return err
	}
	if !flush.Completed() {
		return fmt.Errorf("unable to flush file: %s", s.location)
	}
	return nil
}

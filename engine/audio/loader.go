package audio

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/vivace/engine/core"
	"github.com/spaghettifunk/vivace/engine/jobs"
	"github.com/spaghettifunk/vivace/engine/platform"
)

// Resource is one audio asset addressed by a local path or a URL. Its
// handle reflects only the most recent successful load: it is reset at the
// start of every attempt and on every failure, never left stale.
//
// A Resource is not safe for overlapping operations; drive one load at a
// time per resource.
type Resource struct {
	location string
	remote   bool
	handle   *Handle
}

func NewResource(location string, remote bool) *Resource {
	return &Resource{
		location: location,
		remote:   remote,
	}
}

func (r *Resource) Location() string {
	return r.location
}

func (r *Resource) Remote() bool {
	return r.remote
}

// Handle returns the decoded payload of the last successful load, or nil.
func (r *Resource) Handle() *Handle {
	return r.handle
}

// Loader fetches audio resources through the transport on the job system.
type Loader struct {
	jobs      *jobs.System
	transport platform.Transport
}

func NewLoader(js *jobs.System, transport platform.Transport) *Loader {
	return &Loader{
		jobs:      js,
		transport: transport,
	}
}

/**
 * @brief Loads the resource asynchronously.
 *
 * Exactly one of onLoaded/onError fires once the operation settles. A nil
 * onError swallows failures apart from a log line. The handle is fully
 * stored (or cleared) before either callback runs.
 */
func (l *Loader) Load(r *Resource, onLoaded func(), onError func(result core.FetchResult, message string)) error {
	var onFail func(error)
	if onError != nil {
		onFail = func(err error) {
			var terr *core.TransportError
			if errors.As(err, &terr) {
				onError(terr.Result, terr.Message)
				return
			}
			onError(core.FetchErrInternal, err.Error())
		}
	}

	job := jobs.NewJob(jobs.TypeResourceLoad, jobs.PriorityNormal, func() error {
		return l.load(r)
	}, onLoaded, onFail)

	return l.jobs.Submit(job)
}

func (l *Loader) load(r *Resource) error {
	r.handle = nil

	fileType := TypeFromFileName(r.location)
	if fileType == FileTypeUnknown {
		// No I/O for unresolvable targets.
		return &core.TransportError{
			Result:  core.FetchErrFormat,
			Message: fmt.Sprintf("unable to resolve an audio type for %s", r.location),
		}
	}

	location := r.location
	if !r.remote {
		location = platform.LocalScheme + r.location
	}

	req := l.transport.Fetch(location, fileType.String())
	req.Await()

	if req.Result() != core.FetchOK {
		return &core.TransportError{
			Result:  req.Result(),
			Message: req.Message(),
		}
	}

	r.handle = &Handle{
		Type: fileType,
		Data: req.Payload(),
	}
	return nil
}

package platform

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spaghettifunk/vivace/engine/core"
)

// LocalScheme marks a fetch location as served by the file system instead
// of the network.
const LocalScheme = "file://"

// FetchRequest is one in-flight transport fetch. Await suspends the calling
// worker until a result and message are available.
type FetchRequest interface {
	Await()
	Result() core.FetchResult
	Message() string
	Payload() []byte
}

// Transport retrieves media bytes from a URL or a LocalScheme path. hint
// names the media type the caller resolved for the target.
type Transport interface {
	Fetch(location string, hint string) FetchRequest
}

type fetchRequest struct {
	done    chan struct{}
	result  core.FetchResult
	message string
	payload []byte
}

func (fr *fetchRequest) Await() {
	<-fr.done
}

func (fr *fetchRequest) Result() core.FetchResult {
	return fr.result
}

func (fr *fetchRequest) Message() string {
	return fr.message
}

func (fr *fetchRequest) Payload() []byte {
	return fr.payload
}

func (fr *fetchRequest) finish(result core.FetchResult, message string, payload []byte) {
	fr.result = result
	fr.message = message
	fr.payload = payload
	close(fr.done)
}

// NetTransport serves LocalScheme locations from a FileSystem and anything
// else over HTTP.
type NetTransport struct {
	client *http.Client
	fs     FileSystem
}

func NewNetTransport(client *http.Client, fs FileSystem) *NetTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &NetTransport{client: client, fs: fs}
}

func (nt *NetTransport) Fetch(location string, hint string) FetchRequest {
	fr := &fetchRequest{done: make(chan struct{})}
	go nt.fetch(location, hint, fr)
	return fr
}

func (nt *NetTransport) fetch(location string, hint string, fr *fetchRequest) {
	if strings.HasPrefix(location, LocalScheme) {
		nt.fetchLocal(strings.TrimPrefix(location, LocalScheme), fr)
		return
	}
	nt.fetchRemote(location, hint, fr)
}

func (nt *NetTransport) fetchLocal(path string, fr *fetchRequest) {
	if !nt.fs.Exists(path) {
		fr.finish(core.FetchErrNotFound, fmt.Sprintf("file not found: %s", path), nil)
		return
	}
	req, err := nt.fs.BeginRead(path)
	if err != nil {
		fr.finish(core.FetchErrInternal, err.Error(), nil)
		return
	}
	req.Await()
	if err := req.Err(); err != nil {
		fr.finish(core.FetchErrInternal, err.Error(), nil)
		return
	}
	if !req.Completed() {
		fr.finish(core.FetchErrInternal, fmt.Sprintf("failed to read from file: %s", path), nil)
		return
	}
	fr.finish(core.FetchOK, "", req.Data())
}

func (nt *NetTransport) fetchRemote(location string, hint string, fr *fetchRequest) {
	req, err := http.NewRequest(http.MethodGet, location, nil)
	if err != nil {
		fr.finish(core.FetchErrInternal, err.Error(), nil)
		return
	}
	if hint != "" {
		req.Header.Set("Accept", "audio/"+hint)
	}

	resp, err := nt.client.Do(req)
	if err != nil {
		fr.finish(core.FetchErrNet, err.Error(), nil)
		return
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		fr.finish(core.FetchErrNotFound, fmt.Sprintf("not found: %s", location), nil)
		return
	case resp.StatusCode >= 400:
		fr.finish(core.FetchErrInternal, fmt.Sprintf("fetching %s returned status %s", location, resp.Status), nil)
		return
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		fr.finish(core.FetchErrNet, err.Error(), nil)
		return
	}
	fr.finish(core.FetchOK, "", payload)
}

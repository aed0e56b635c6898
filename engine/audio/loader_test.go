package audio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vivace/engine/core"
	"github.com/spaghettifunk/vivace/engine/jobs"
	"github.com/spaghettifunk/vivace/engine/platform"
)

type fakeFetchRequest struct {
	result  core.FetchResult
	message string
	payload []byte
}

func (f *fakeFetchRequest) Await()                   {}
func (f *fakeFetchRequest) Result() core.FetchResult { return f.result }
func (f *fakeFetchRequest) Message() string          { return f.message }
func (f *fakeFetchRequest) Payload() []byte          { return f.payload }

type fakeTransport struct {
	mu        sync.Mutex
	locations []string
	hints     []string

	result  core.FetchResult
	message string
	payload []byte
}

func (ft *fakeTransport) Fetch(location string, hint string) platform.FetchRequest {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.locations = append(ft.locations, location)
	ft.hints = append(ft.hints, hint)
	return &fakeFetchRequest{result: ft.result, message: ft.message, payload: ft.payload}
}

func (ft *fakeTransport) fetchCount() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.locations)
}

type loadOutcome struct {
	failed  bool
	result  core.FetchResult
	message string
}

// load drives one Load call to completion and reports which callback fired.
func load(t *testing.T, l *Loader, r *Resource) loadOutcome {
	t.Helper()
	done := make(chan loadOutcome, 1)
	err := l.Load(r,
		func() {
			done <- loadOutcome{}
		},
		func(result core.FetchResult, message string) {
			done <- loadOutcome{failed: true, result: result, message: message}
		})
	require.NoError(t, err)
	return <-done
}

func newLoader(t *testing.T, transport platform.Transport) *Loader {
	t.Helper()
	js, err := jobs.NewSystem(1, 8)
	require.NoError(t, err)
	t.Cleanup(func() { js.Shutdown() })
	return NewLoader(js, transport)
}

func TestLoadUnknownFormatSkipsTransport(t *testing.T) {
	transport := &fakeTransport{result: core.FetchOK}
	loader := newLoader(t, transport)
	resource := NewResource("notes.txt", false)

	outcome := load(t, loader, resource)

	assert.True(t, outcome.failed)
	assert.Equal(t, core.FetchErrFormat, outcome.result)
	assert.Contains(t, outcome.message, "notes.txt")
	assert.Nil(t, resource.Handle())
	assert.Equal(t, 0, transport.fetchCount())
}

func TestLoadLocalSuccess(t *testing.T) {
	transport := &fakeTransport{result: core.FetchOK, payload: []byte("riff-data")}
	loader := newLoader(t, transport)
	resource := NewResource("music/theme.mp3", false)

	outcome := load(t, loader, resource)

	require.False(t, outcome.failed)
	require.NotNil(t, resource.Handle())
	assert.Equal(t, FileTypeMPEG, resource.Handle().Type)
	assert.Equal(t, []byte("riff-data"), resource.Handle().Data)
	// Local targets are fetched through the file scheme, with the resolved
	// type as the hint.
	assert.Equal(t, []string{"file://music/theme.mp3"}, transport.locations)
	assert.Equal(t, []string{"mpeg"}, transport.hints)
}

func TestLoadRemoteUsesLocationAsIs(t *testing.T) {
	transport := &fakeTransport{result: core.FetchOK, payload: []byte("ogg")}
	loader := newLoader(t, transport)
	resource := NewResource("https://cdn.example.com/theme.ogg", true)

	outcome := load(t, loader, resource)

	require.False(t, outcome.failed)
	assert.Equal(t, []string{"https://cdn.example.com/theme.ogg"}, transport.locations)
	assert.Equal(t, FileTypeOggVorbis, resource.Handle().Type)
}

func TestLoadFailureClearsPreviousHandle(t *testing.T) {
	transport := &fakeTransport{result: core.FetchOK, payload: []byte("first")}
	loader := newLoader(t, transport)
	resource := NewResource("theme.wav", false)

	require.False(t, load(t, loader, resource).failed)
	require.NotNil(t, resource.Handle())

	transport.result = core.FetchErrNotFound
	transport.message = "file not found: theme.wav"

	outcome := load(t, loader, resource)
	assert.True(t, outcome.failed)
	assert.Equal(t, core.FetchErrNotFound, outcome.result)
	assert.Nil(t, resource.Handle(), "a failed load must not leave a stale handle")
}

func TestLoadTwiceKeepsSecondResult(t *testing.T) {
	transport := &fakeTransport{result: core.FetchOK, payload: []byte("first")}
	loader := newLoader(t, transport)
	resource := NewResource("theme.wav", false)

	require.False(t, load(t, loader, resource).failed)

	transport.payload = []byte("second")
	require.False(t, load(t, loader, resource).failed)

	require.NotNil(t, resource.Handle())
	assert.Equal(t, []byte("second"), resource.Handle().Data)
	assert.Equal(t, 2, transport.fetchCount())
}

package platform

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vivace/engine/core"
)

func TestFetchLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.ogg")
	require.NoError(t, os.WriteFile(path, []byte("vorbis"), 0o644))

	transport := NewNetTransport(nil, NewDiskFS())
	req := transport.Fetch(LocalScheme+path, "oggvorbis")
	req.Await()

	assert.Equal(t, core.FetchOK, req.Result())
	assert.Equal(t, []byte("vorbis"), req.Payload())
}

func TestFetchLocalMissing(t *testing.T) {
	transport := NewNetTransport(nil, NewDiskFS())
	path := filepath.Join(t.TempDir(), "absent.wav")

	req := transport.Fetch(LocalScheme+path, "wav")
	req.Await()

	assert.Equal(t, core.FetchErrNotFound, req.Result())
	assert.Contains(t, req.Message(), path)
	assert.Nil(t, req.Payload())
}

func TestFetchRemote(t *testing.T) {
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	transport := NewNetTransport(server.Client(), NewDiskFS())
	req := transport.Fetch(server.URL+"/theme.mp3", "mpeg")
	req.Await()

	assert.Equal(t, core.FetchOK, req.Result())
	assert.Equal(t, []byte("mp3-bytes"), req.Payload())
	assert.Equal(t, "audio/mpeg", gotAccept)
}

func TestFetchRemoteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	transport := NewNetTransport(server.Client(), NewDiskFS())
	req := transport.Fetch(server.URL+"/missing.mp3", "mpeg")
	req.Await()

	assert.Equal(t, core.FetchErrNotFound, req.Result())
}

func TestFetchRemoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	transport := NewNetTransport(server.Client(), NewDiskFS())
	req := transport.Fetch(server.URL+"/broken.mp3", "mpeg")
	req.Await()

	assert.Equal(t, core.FetchErrInternal, req.Result())
	assert.Contains(t, req.Message(), "500")
}

func TestFetchRemoteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	transport := NewNetTransport(nil, NewDiskFS())
	req := transport.Fetch(url+"/theme.mp3", "mpeg")
	req.Await()

	assert.Equal(t, core.FetchErrNet, req.Result())
}

// Package assets indexes the asset root and keeps the index current by
// watching the directory tree for changes.
package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/vivace/engine/audio"
	"github.com/spaghettifunk/vivace/engine/core"
)

// Kind is the broad category an indexed file belongs to.
type Kind int

const (
	KindNone Kind = iota
	// KindAudio: the extension resolves to a known audio file type.
	KindAudio
	// KindDocument: a JSON document eligible for a document store.
	KindDocument
)

type AssetInfo struct {
	Path      string
	Kind      Kind
	AudioType audio.FileType
	LastSeen  time.Time
}

type Manager struct {
	assets map[string]AssetInfo

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewManager() (*Manager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Manager{
		assets:   make(map[string]AssetInfo),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes everything under assetsDir and starts watching the
// tree (recursively) for later changes.
func (m *Manager) Initialize(assetsDir string) error {
	go m.start()

	if m.isClosed {
		return errors.New("asset manager already closed")
	}
	return m.watchRecursive(assetsDir, false)
}

// Lookup returns the indexed info for a path previously seen by the manager.
func (m *Manager) Lookup(path string) (AssetInfo, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	info, ok := m.assets[path]
	return info, ok
}

// ByKind returns all indexed assets of the given kind.
func (m *Manager) ByKind(kind Kind) []AssetInfo {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	var out []AssetInfo
	for _, info := range m.assets {
		if info.Kind == kind {
			out = append(out, info)
		}
	}
	return out
}

func (m *Manager) Shutdown() error {
	if m.isClosed {
		return nil
	}
	m.isClosed = true
	close(m.done)
	return m.fsnotify.Close()
}

func (m *Manager) start() {
	for {
		select {

		case e, ok := <-m.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					m.watchRecursive(e.Name, false)
				}
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				code := core.EVENT_CODE_ASSET_MODIFIED
				if e.Op&fsnotify.Create != 0 {
					code = core.EVENT_CODE_ASSET_ADDED
				}
				if m.handleFileEvent(e.Name) {
					core.EventFire(code, m, core.EventContext{Path: e.Name})
				}
			}
			// Can't stat a deleted entry, so just try to remove it from both
			// the index and the watch list.
			if e.Op&fsnotify.Remove != 0 {
				if m.removeAsset(e.Name) {
					core.EventFire(core.EVENT_CODE_ASSET_REMOVED, m, core.EventContext{Path: e.Name})
				}
				m.fsnotify.Remove(e.Name)
			}

		case err, ok := <-m.fsnotify.Errors:
			if !ok {
				return
			}
			if err != nil {
				core.LogError(err.Error())
			}

		case <-m.done:
			// Shutdown closed the watcher already.
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it walks over.
func (m *Manager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return m.fsnotify.Remove(walkPath)
			}
			return m.fsnotify.Add(walkPath)
		}
		m.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file. Reports whether the file
// is an asset the manager tracks.
func (m *Manager) handleFileEvent(path string) bool {
	kind, audioType := determineAssetKind(path)
	if kind == KindNone {
		return false
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.assets[path] = AssetInfo{
		Path:      path,
		Kind:      kind,
		AudioType: audioType,
		LastSeen:  time.Now(),
	}
	return true
}

// Remove the asset from the index if it was deleted
func (m *Manager) removeAsset(path string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.assets[path]; !ok {
		return false
	}
	delete(m.assets, path)
	return true
}

func determineAssetKind(path string) (Kind, audio.FileType) {
	if t := audio.TypeFromFileName(path); t != audio.FileTypeUnknown {
		return KindAudio, t
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return KindDocument, audio.FileTypeUnknown
	}
	return KindNone, audio.FileTypeUnknown
}

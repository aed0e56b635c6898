package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vivace/engine/audio"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestInitializeIndexesExistingFiles(t *testing.T) {
	root := t.TempDir()
	theme := filepath.Join(root, "theme.mp3")
	track := filepath.Join(root, "music", "track.ogg")
	settings := filepath.Join(root, "settings.json")
	readme := filepath.Join(root, "readme.txt")
	writeFile(t, theme)
	writeFile(t, track)
	writeFile(t, settings)
	writeFile(t, readme)

	m, err := NewManager()
	require.NoError(t, err)
	defer m.Shutdown()
	require.NoError(t, m.Initialize(root))

	info, ok := m.Lookup(theme)
	require.True(t, ok)
	assert.Equal(t, KindAudio, info.Kind)
	assert.Equal(t, audio.FileTypeMPEG, info.AudioType)

	info, ok = m.Lookup(track)
	require.True(t, ok)
	assert.Equal(t, audio.FileTypeOggVorbis, info.AudioType)

	info, ok = m.Lookup(settings)
	require.True(t, ok)
	assert.Equal(t, KindDocument, info.Kind)

	_, ok = m.Lookup(readme)
	assert.False(t, ok, "files of no known kind stay out of the index")

	assert.Len(t, m.ByKind(KindAudio), 2)
	assert.Len(t, m.ByKind(KindDocument), 1)
}

func TestDetermineAssetKind(t *testing.T) {
	kind, audioType := determineAssetKind("a/b/theme.wav")
	assert.Equal(t, KindAudio, kind)
	assert.Equal(t, audio.FileTypeWAV, audioType)

	kind, _ = determineAssetKind("saves/slot1.JSON")
	assert.Equal(t, KindDocument, kind)

	kind, _ = determineAssetKind("shader.glsl")
	assert.Equal(t, KindNone, kind)
}

func TestShutdownIsIdempotent(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Shutdown())
	require.NoError(t, m.Shutdown())
}

/*
Package testbed is an example application that exercises the resource
layer: a settings document round trip and an audio load driven through the
asset index.
*/
package testbed

import (
	"errors"
	"path/filepath"

	"github.com/spaghettifunk/vivace/engine"
	"github.com/spaghettifunk/vivace/engine/assets"
	"github.com/spaghettifunk/vivace/engine/audio"
	"github.com/spaghettifunk/vivace/engine/config"
	"github.com/spaghettifunk/vivace/engine/core"
	"github.com/spaghettifunk/vivace/engine/documents"
)

type Settings struct {
	MasterVolume float64 `json:"master_volume"`
	MusicVolume  float64 `json:"music_volume"`
	Muted        bool    `json:"muted"`
}

type gameState struct {
	settings *documents.Store[Settings]
	theme    *audio.Resource
}

type TestGame struct {
	*engine.Game
}

func NewTestGame() (*TestGame, error) {
	cfg, err := config.Load("vivace.toml")
	if err != nil {
		return nil, err
	}

	tg := &TestGame{
		Game: &engine.Game{
			Config: cfg,
			State:  &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnRun = tg.Run
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	core.LogInfo("initializing testbed...")

	state := g.State.(*gameState)
	state.settings = documents.NewStore[Settings](e.Jobs(), e.FileSystem(),
		filepath.Join(e.Config().AssetRoot, "settings.json"))

	core.EventRegister(core.EVENT_CODE_ASSET_MODIFIED, g, g.onAssetEvent)
	return nil
}

func (g *TestGame) Run(e *engine.Engine) error {
	state := g.State.(*gameState)

	// Settings round trip: create-or-load, tweak, persist.
	if err := await(func(onDone func(), onError func(string)) error {
		return state.settings.LoadOrInit(onDone, onError)
	}); err != nil {
		return err
	}
	core.LogInfo("settings loaded: %+v", state.settings.Value())

	settings := state.settings.Value()
	settings.MasterVolume = 0.8
	state.settings.SetValue(settings)
	if err := await(func(onDone func(), onError func(string)) error {
		return state.settings.Save(onDone, onError)
	}); err != nil {
		return err
	}

	// Load the first audio asset the manager indexed, if any.
	tracks := e.Assets().ByKind(assets.KindAudio)
	if len(tracks) == 0 {
		core.LogInfo("no audio assets under %s", e.Config().AssetRoot)
		return nil
	}

	state.theme = audio.NewResource(tracks[0].Path, false)
	loaded := make(chan error, 1)
	err := e.AudioLoader().Load(state.theme,
		func() {
			loaded <- nil
		},
		func(result core.FetchResult, message string) {
			loaded <- errors.New(message)
		})
	if err != nil {
		return err
	}
	if err := <-loaded; err != nil {
		return err
	}

	core.LogInfo("loaded %s (%s, %d bytes)",
		state.theme.Location(), state.theme.Handle().Type, state.theme.Handle().Size())
	return nil
}

func (g *TestGame) Shutdown(e *engine.Engine) error {
	core.EventUnregister(core.EVENT_CODE_ASSET_MODIFIED, g, g.onAssetEvent)
	return nil
}

func (g *TestGame) onAssetEvent(code core.EventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	core.LogDebug("asset changed on disk: %s", data.Path)
	return false
}

// await drives one asynchronous operation to completion.
func await(op func(onDone func(), onError func(string)) error) error {
	done := make(chan error, 1)
	if err := op(
		func() { done <- nil },
		func(message string) { done <- errors.New(message) },
	); err != nil {
		return err
	}
	return <-done
}

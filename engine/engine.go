package engine

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spaghettifunk/vivace/engine/assets"
	"github.com/spaghettifunk/vivace/engine/audio"
	"github.com/spaghettifunk/vivace/engine/config"
	"github.com/spaghettifunk/vivace/engine/core"
	"github.com/spaghettifunk/vivace/engine/jobs"
	"github.com/spaghettifunk/vivace/engine/platform"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	StageUninitialized Stage = iota
	// Engine is currently initializing
	StageInitializing
	// Engine initialization is complete
	StageInitialized
	// Engine is currently running
	StageRunning
	// Engine is in the process of shutting down
	StageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	cfg          *config.Config

	jobSystem    *jobs.System
	fileSystem   platform.FileSystem
	transport    platform.Transport
	assetManager *assets.Manager
	audioLoader  *audio.Loader
}

func New(g *Game) (*Engine, error) {
	cfg := g.Config
	if cfg == nil {
		cfg = config.Default()
	}

	core.SetLogLevel(cfg.LogLevel)
	core.EventInitialize()
	if err := core.MetricsInitialize(); err != nil {
		return nil, err
	}

	js, err := jobs.NewSystem(cfg.Workers, cfg.QueueSize)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am, err := assets.NewManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	fs := platform.NewDiskFS()
	transport := platform.NewNetTransport(&http.Client{Timeout: cfg.HTTPTimeout()}, fs)

	return &Engine{
		currentStage: StageUninitialized,
		gameInstance: g,
		cfg:          cfg,
		jobSystem:    js,
		fileSystem:   fs,
		transport:    transport,
		assetManager: am,
		audioLoader:  audio.NewLoader(js, transport),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = StageInitializing

	if _, err := os.Stat(e.cfg.AssetRoot); err != nil {
		core.LogWarn("asset root %s not found, skipping asset indexing", e.cfg.AssetRoot)
	} else if err := e.assetManager.Initialize(e.cfg.AssetRoot); err != nil {
		core.LogError(err.Error())
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = StageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != StageInitialized {
		return fmt.Errorf("engine must be initialized before running")
	}
	e.currentStage = StageRunning

	if e.gameInstance.FnRun != nil {
		return e.gameInstance.FnRun(e)
	}
	return nil
}

func (e *Engine) Shutdown() error {
	if e.currentStage == StageShuttingDown {
		return nil
	}
	e.currentStage = StageShuttingDown
	core.LogInfo("shutting down...")

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.jobSystem.Shutdown(); err != nil {
		core.LogError(err.Error())
	}

	succeeded, failed := core.MetricsJobCounts()
	core.LogInfo("jobs run: %d succeeded, %d failed", succeeded, failed)

	return core.EventShutdown()
}

func (e *Engine) Config() *config.Config {
	return e.cfg
}

func (e *Engine) Jobs() *jobs.System {
	return e.jobSystem
}

func (e *Engine) FileSystem() platform.FileSystem {
	return e.fileSystem
}

func (e *Engine) Transport() platform.Transport {
	return e.transport
}

func (e *Engine) Assets() *assets.Manager {
	return e.assetManager
}

func (e *Engine) AudioLoader() *audio.Loader {
	return e.audioLoader
}

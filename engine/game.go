package engine

import "github.com/spaghettifunk/vivace/engine/config"

type Game struct {
	Config       *config.Config
	State        interface{}
	FnInitialize Initialize
	FnRun        Run
	FnShutdown   Shutdown
}

type Initialize func(e *Engine) error
type Run func(e *Engine) error
type Shutdown func(e *Engine) error

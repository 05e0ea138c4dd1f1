/*
This is an example of application that will use the
engine package to play an animation clip headless
*/
package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/animotion/engine"
	"github.com/spaghettifunk/animotion/engine/core"
	"github.com/spaghettifunk/animotion/testbed"
)

func main() {
	configPath := flag.String("config", "engine.toml", "path of the engine configuration")
	frames := flag.Uint64("frames", 180, "frames to run, 0 runs until interrupted")
	flag.Parse()

	config, err := engine.LoadConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		core.LogInfo("no config at '%s', using defaults", *configPath)
		config, err = engine.DefaultConfig(), nil
	}
	if err != nil {
		core.LogFatal(err.Error())
	}

	tb := testbed.NewTestGame(config, *frames)

	e, err := engine.New(tb.Game, &testbed.HeadlessDevice{})
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the main loop on interrupt
	go func() {
		<-sigCh
		e.Stop()
	}()

	// run engine
	if err := e.Run(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.Shutdown(); err != nil {
		core.LogFatal(err.Error())
	}
}

/*
Map viewer: loads the tiles of a map with their navigation mesh and lets
you click paths on it.
*/
package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/navview/engine"
	"github.com/spaghettifunk/navview/engine/assets/loaders"
	"github.com/spaghettifunk/navview/engine/core"
	"github.com/spaghettifunk/navview/testbed"
)

func main() {
	configPath := flag.String("config", loaders.DefaultConfigPath, "path of the viewer config")
	assetsDir := flag.String("assets", "assets", "directory holding shaders and config")
	flag.Parse()

	cfg, err := loaders.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, core.ErrConfigNotFound) {
			core.LogFatal("invalid config: %s", err)
		}
		core.LogWarn("%s, using defaults", err)
	}

	viewer := testbed.NewMapViewer(cfg, *assetsDir, *configPath)

	e, err := engine.New(viewer.Game)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the window belongs to the main thread, so only ask the loop to stop
	go func() {
		<-sigCh
		e.RequestQuit()
	}()

	// run engine
	if err := e.Run(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.Shutdown(); err != nil {
		panic(err)
	}
}

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"maze-game/internal/audio"
	"maze-game/internal/config"
	"maze-game/internal/debug"
	"maze-game/internal/env"
	"maze-game/internal/game"
	"maze-game/internal/graphics"
	"maze-game/internal/logger"
	"maze-game/internal/physics"
	"maze-game/internal/resource"
	"maze-game/internal/scene"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
		os.Exit(1)
	}
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogPath)
	if err := run(cfg, log); err != nil {
		log.Logf("fatal: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Logf("starting with seed %d", seed)
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32))

	graphics.RouteTrace(log)
	win, err := graphics.Open(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	device := graphics.NewDevice()
	defer device.Close()
	target, err := graphics.NewTarget(device)
	if err != nil {
		return err
	}
	defer target.Close()

	reg := resource.NewRegistry(device, cfg.Assets, log)
	defer reg.Close()
	if err := game.LoadAssets(reg, seed, rng); err != nil {
		return err
	}

	clock := graphics.Clock{}
	graph := scene.New(clock)
	world := physics.NewWorld(reg)
	if err := game.BuildScene(reg, graph, world, rng); err != nil {
		return err
	}
	log.Logf("scene built: %d nodes, %d colliders", graph.Len(), len(world.Colliders))

	var music audio.Player = audio.Silent{}
	if m, err := audio.NewMusic(cfg.MusicVolume); err != nil {
		log.Logf("audio disabled: %v", err)
	} else {
		music = m
	}
	defer music.Close()
	if err := music.PlayLoop(filepath.Join(cfg.Assets, cfg.Music)); err != nil {
		log.Logf("no background music: %v", err)
	}

	window := cfg.Window
	window.Width, window.Height = win.Size()
	deps := game.Deps{
		Clock:    clock,
		Graph:    graph,
		Registry: reg,
		World:    world,
		Renderer: device,
		Target:   target,
		Closer:   win,
		Music:    music,
		Log:      log,
	}
	overlay := debug.New()
	overlay.ShowFPS = cfg.ShowFPS
	overlay.ShowMemAlloc = cfg.ShowMemAlloc
	if overlay.Enabled() {
		deps.Overlay = overlay
	}

	g, err := game.New(deps, window, cfg.Camera)
	if err != nil {
		return err
	}
	if overlay.Enabled() {
		overlay.Status = g.Status
	}

	win.Run(g)
	log.Logf("closed in phase %s with %d/%d gems", g.Phase(), g.Collected(), len(g.Gems()))
	return nil
}

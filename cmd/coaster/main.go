package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/commands"
	"coaster-studio/internal/engineconfig"
	"coaster-studio/internal/env"
	"coaster-studio/internal/graphics"
	"coaster-studio/internal/hud"
	"coaster-studio/internal/logger"
	"coaster-studio/internal/scene"
	"coaster-studio/internal/terminal"
)

func main() {
	envErr := env.Load(".env")
	log := logger.New(env.String("COASTER_LOG", logger.LogFilePath))
	if envErr != nil {
		log.Logf(".env: %v", envErr)
	}

	cfgPath := env.String("COASTER_CONFIG", engineconfig.ConfigPath)
	cfg, err := engineconfig.Load(cfgPath)
	if err != nil {
		log.Logf("config %s: %v (using defaults)", cfgPath, err)
	}

	state := coaster.New(coaster.Options{
		Loop:  cfg.Loop,
		Ride:  cfg.Ride,
		Curve: cfg.Curve,
		Log:   log,
	})
	if v := env.Float("COASTER_SPEED", 1); v != 1 {
		if err := state.SetRideSpeed(v); err != nil {
			log.Logf("COASTER_SPEED: %v", err)
		}
	}
	scn := scene.New(cfg.Engine)
	overlay := hud.New()
	overlay.SetShowFPS(cfg.Engine.ShowFPS)
	overlay.SetShowMemAlloc(cfg.Engine.ShowMemAlloc)

	reg := commands.NewRegistry()
	commands.RegisterCoaster(reg, state, log)
	commands.RegisterView(reg, scn, log)
	commands.RegisterConfig(reg, cfgPath, func() engineconfig.Config {
		cur := cfg
		cur.Engine.GridVisible = scn.GridVisible
		cur.Engine.ShowSupports = scn.ShowSupports
		cur.Engine.NightMode = scn.NightMode
		cur.Engine.ShowFPS = overlay.ShowFPS
		cur.Engine.ShowMemAlloc = overlay.ShowMemAlloc
		return cur
	}, log)
	term := terminal.New(log, reg)
	term.Submit("demo")
	log.Log("press T or ESC for the terminal, ENTER to ride, type help for commands")

	update := func(dt float32) {
		term.Update()
		if !term.IsOpen() && (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) {
			if state.Riding() {
				term.Submit("stop")
			} else {
				term.Submit("ride")
			}
		}
		state.Tick(float64(dt))
		scn.Update(state, !term.IsOpen())
	}
	draw := func() {
		scn.Draw(state)
		overlay.Draw(state)
		term.Draw()
	}
	graphics.Run(update, draw)
	scn.Close()
}

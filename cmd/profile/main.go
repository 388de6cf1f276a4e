// Command profile rides the demo layout headlessly and writes a speed/height chart.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/engineconfig"
	"coaster-studio/internal/env"
	"coaster-studio/internal/profile"
	"coaster-studio/internal/track"
)

func main() {
	configPath := flag.String("config", engineconfig.ConfigPath, "config file")
	out := flag.String("o", "ride-profile.html", "output file")
	format := flag.String("format", "", "html or png (default: from the -o extension)")
	loopAt := flag.Uint64("loop-at", 0, "insert a loop at this demo point id (0 = none)")
	looped := flag.Bool("looped", false, "close the track")
	chain := flag.Bool("chain", true, "chain lift up the first hill")
	speed := flag.Float64("speed", env.Float("COASTER_SPEED", 1), "ride speed multiplier")
	dt := flag.Float64("dt", 1.0/60, "tick in seconds")
	flag.Parse()

	cfg, err := engineconfig.Load(*configPath)
	if err != nil {
		log.Printf("config %s: %v (using defaults)", *configPath, err)
	}

	s := coaster.New(coaster.Options{Loop: cfg.Loop, Ride: cfg.Ride, Curve: cfg.Curve})
	s.LoadDemo()
	if *loopAt != 0 && !s.InsertLoop(track.ID(*loopAt)) {
		log.Fatalf("no demo point %d", *loopAt)
	}
	s.SetLooped(*looped)
	s.SetChainLift(*chain)
	if err := s.SetRideSpeed(*speed); err != nil {
		log.Fatalf("speed: %v", err)
	}

	p, err := profile.Record(s, profile.Options{DT: *dt, MaxDuration: profile.DefaultOptions().MaxDuration})
	if err != nil {
		log.Fatalf("record: %v", err)
	}
	log.Printf("ride %s: %d samples, %.1f m, %.1f s, top speed %.1f m/s, %.1f s on the lift",
		p.RideID, len(p.Samples), p.Length, p.Duration(), p.MaxSpeed(), p.LiftTime())

	kind := strings.ToLower(*format)
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(*out)), ".")
	}
	switch kind {
	case "html":
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		if err := profile.RenderHTML(f, p); err != nil {
			f.Close()
			log.Fatalf("%v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close %s: %v", *out, err)
		}
	case "png", "svg", "pdf":
		if err := profile.RenderPNG(*out, p); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		log.Fatalf("unknown format %q (want html or png)", kind)
	}
	log.Printf("wrote %s", *out)
}

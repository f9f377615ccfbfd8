// Command satsim runs a scene headless: the body falls and moves under a
// fixed intent for a number of ticks, and every contact is resolved the way
// the demo resolves it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/logging"
	"github.com/milk9111/satcollide/motion"
	"github.com/milk9111/satcollide/scene"
	"github.com/milk9111/satcollide/sim"
	"github.com/milk9111/satcollide/specs"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("satsim", flag.ContinueOnError)
	fs.SetOutput(out)
	sceneName := fs.String("scene", "default", "scene name in specs/scenes/ (basename, .yaml optional)")
	ticks := fs.Int("ticks", 120, "number of ticks to run")
	tps := fs.Int("tps", 0, "ticks per second; 0 uses physics.yaml")
	intentKeys := fs.String("intent", "", "keys held every tick, any of w, a, s, d")
	noGravity := fs.Bool("nogravity", false, "start with gravity off")
	primitive := fs.String("primitive", "", "overlap test, sat or chipmunk; empty uses physics.yaml")
	validate := fs.Bool("validate", false, "only build and check the scene geometry")
	verbose := fs.Bool("v", false, "print every tick")
	logLevel := fs.String("log", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ticks < 0 {
		return fmt.Errorf("satsim: -ticks must not be negative, got %d", *ticks)
	}
	intent, err := parseIntent(*intentKeys)
	if err != nil {
		return err
	}

	logger, err := logging.New(*logLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sc, err := scene.Load(*sceneName, logger)
	if err != nil {
		return fmt.Errorf("satsim: %w", err)
	}
	if *validate {
		printScene(out, sc)
		return nil
	}

	physics, err := specs.LoadPhysics()
	if err != nil {
		return fmt.Errorf("satsim: %w", err)
	}
	if *tps > 0 {
		physics.TPS = *tps
	}
	if *primitive != "" {
		physics.Primitive = *primitive
	}
	s, err := sim.New(sc, physics, logger)
	if err != nil {
		return fmt.Errorf("satsim: %w", err)
	}
	s.SetGravityEnabled(!*noGravity)

	dt := 1 / float64(physics.TPS)
	var contacts, resolved, skipped int
	for i := 0; i < *ticks; i++ {
		report, err := s.Tick(dt, intent)
		contacts += report.Contacts
		resolved += report.Resolved
		skipped += len(report.SkippedErrors())
		if err != nil {
			logger.Error("satsim: tick failed", zap.Uint64("tick", report.Tick), zap.Error(err))
			return err
		}
		if *verbose {
			fmt.Fprintf(out, "tick %d position %s velocity %s contacts %d resolved %d\n",
				report.Tick, formatVec(s.Body().Position()), formatVec(s.Body().Velocity()),
				report.Contacts, report.Resolved)
		}
	}

	fmt.Fprintf(out, "scene %s: %d ticks at %d tps\n", sc.Name, *ticks, physics.TPS)
	fmt.Fprintf(out, "contacts: %d resolved: %d skipped: %d\n", contacts, resolved, skipped)
	fmt.Fprintf(out, "position: %s\n", formatVec(s.Body().Position()))
	fmt.Fprintf(out, "velocity: %s\n", formatVec(s.Body().Velocity()))
	return nil
}

func parseIntent(keys string) (motion.Intent, error) {
	var intent motion.Intent
	for _, r := range strings.ToLower(keys) {
		switch r {
		case 'w':
			intent.Up = true
		case 'a':
			intent.Left = true
		case 's':
			intent.Down = true
		case 'd':
			intent.Right = true
		default:
			return motion.Intent{}, fmt.Errorf("satsim: unknown intent key %q", r)
		}
	}
	return intent, nil
}

func printScene(out io.Writer, sc *scene.Scene) {
	fmt.Fprintf(out, "scene %s: %d obstacles ok\n", sc.Name, len(sc.Obstacles))
	for i, o := range sc.Obstacles {
		bb := o.BB()
		fmt.Fprintf(out, "%3d %-24s %d points  bb (%.1f, %.1f)-(%.1f, %.1f)\n",
			i, sc.Names[i], o.Len(), bb.L, bb.B, bb.R, bb.T)
	}
}

func formatVec(v cp.Vector) string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

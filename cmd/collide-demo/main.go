// cmd/collide-demo/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/config"
	"github.com/opd-ai/collide2d/pkg/event"
	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/health"
	"github.com/opd-ai/collide2d/pkg/logging"
	"github.com/opd-ai/collide2d/pkg/render"
	engorender "github.com/opd-ai/collide2d/pkg/render/engo"
)

// options holds the parsed command line
type options struct {
	ConfigPath string
	Renderer   string
	Width      int
	Height     int
	FontPath   string
	HealthAddr string

	// Out receives the ascii frame
	Out io.Writer
	// Monitor receives world snapshots; run creates one when nil
	Monitor *health.Monitor
}

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	opts := options{Out: os.Stdout}
	flag.StringVar(&opts.ConfigPath, "config", "scene.json", "Path to scene file")
	createDefault := flag.Bool("default", false, "Create default scene file")
	flag.StringVar(&opts.Renderer, "render", "none", "Debug view: 'none', 'ascii', 'terminal' or 'engo'")
	flag.IntVar(&opts.Width, "width", 80, "View width (characters for ascii, pixels for engo)")
	flag.IntVar(&opts.Height, "height", 24, "View height (characters for ascii, pixels for engo)")
	flag.StringVar(&opts.FontPath, "font", "", "TTF font for the engo counters overlay")
	schemaPath := flag.String("schema", "", "Write the scene JSON Schema to this path and exit")
	flag.StringVar(&opts.HealthAddr, "health", "", "Serve /health, /ready and /stats on this address, e.g. ':8080'")
	flag.Parse()

	if *schemaPath != "" {
		if err := config.WriteSchema(*schemaPath); err != nil {
			logger.Error(ctx, "Failed to write scene schema", err, "schema_path", *schemaPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Wrote scene schema", "schema_path", *schemaPath)
		return
	}

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.ConfigPath); err != nil {
			logger.Error(ctx, "Failed to create default scene", err, "config_path", opts.ConfigPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default scene file", "config_path", opts.ConfigPath)
		return
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error(ctx, "Demo failed", err, "config_path", opts.ConfigPath)
		os.Exit(1)
	}
}

// run builds the scene world, runs its queries and shows the chosen view.
// Every resource it starts is released before it returns.
func run(ctx context.Context, logger *logging.Logger, opts options) error {
	scene, err := loadScene(ctx, logger, opts.ConfigPath)
	if err != nil {
		return logging.WrapError(err, "failed to load scene")
	}

	bus := event.NewEventBus()
	manager := collision.NewManager(collision.WithLogger(logger), collision.WithEventBus(bus))
	if err := manager.Setup(); err != nil {
		return logging.WrapError(err, "failed to set up collision manager")
	}
	defer manager.Destroy()

	monitor := opts.Monitor
	if monitor == nil {
		monitor = health.NewMonitor()
	}
	monitor.SetReady(true)
	defer monitor.SetReady(false)

	var healthServer *http.Server
	if opts.HealthAddr != "" {
		healthServer = startHealthServer(ctx, logger, opts.HealthAddr, monitor)
		defer stopHealthServer(ctx, logger, healthServer)
	}

	d, err := buildDemo(scene, manager, bus)
	if err != nil {
		return logging.WrapError(err, "failed to build world")
	}
	defer d.close()
	defer monitor.Forget(demoWorldName)

	if _, err := d.runQueries(ctx, logger, scene.Queries); err != nil {
		return err
	}
	monitor.Record(demoWorldName, d.world)
	stats := d.world.Stats()
	logger.Info(ctx, "World statistics",
		"shapes", d.world.ShapeCount(),
		"cells", d.world.CellCount(),
		"collision_events", d.hits,
		"broad_phase_calls", stats.BroadPhaseCalls,
		"cells_touched", stats.CellsTouched,
		"collision_checks", stats.CollisionChecks,
		"collision_matches", stats.CollisionMatches,
	)

	drawOpts, err := scene.Debug.DebugOptions()
	if err != nil {
		return logging.WrapError(err, "invalid debug settings")
	}
	region := scene.Debug.Region.Rect()

	switch opts.Renderer {
	case "ascii":
		drawer := render.NewTerminalDrawer(opts.Width, opts.Height, 1)
		drawer.FitRegion(region)
		d.world.SetDebugDrawer(drawer)
		if err := d.world.DebugDraw(region, drawOpts); err != nil {
			return logging.WrapError(err, "debug draw failed")
		}
		if _, err := drawer.WriteTo(opts.Out); err != nil {
			return logging.WrapError(err, "failed to write frame")
		}
	case "terminal":
		if err := runTerminal(ctx, d.world, region, drawOpts); err != nil {
			return logging.WrapError(err, "terminal view failed")
		}
	case "engo":
		debugScene := engorender.NewDebugScene(d.world, engorender.SceneOptions{
			Region:   region,
			Draw:     drawOpts,
			Width:    float32(opts.Width),
			Height:   float32(opts.Height),
			FontPath: opts.FontPath,
			Logger:   logger,
		})
		engo.Run(engo.RunOptions{
			Title:  "collide2d debug view",
			Width:  opts.Width,
			Height: opts.Height,
			VSync:  true,
		}, debugScene)
	case "none":
		if healthServer != nil {
			waitForSignal(ctx, logger)
		}
	default:
		return fmt.Errorf("unknown renderer %q", opts.Renderer)
	}
	return nil
}

// waitForSignal blocks until SIGINT or SIGTERM
func waitForSignal(ctx context.Context, logger *logging.Logger) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	logger.Info(ctx, "Shutting down")
}

// loadScene reads the scene file, falling back to the default scene when
// it does not exist, then applies environment overrides and validates it
func loadScene(ctx context.Context, logger *logging.Logger, path string) (*config.SceneConfig, error) {
	var scene *config.SceneConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Scene file not found, using default scene", "config_path", path)
		scene = config.DefaultConfig()
	} else {
		scene, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnvironmentOverrides(scene); err != nil {
		return nil, err
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return scene, nil
}

// runTerminal shows the world on a tcell screen until Escape, q or a signal
func runTerminal(ctx context.Context, world *collision.World, region geometry.Rect, opts collision.DebugDrawOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	draw := func() error {
		w, h := screen.Size()
		drawer := render.NewTerminalDrawer(w, h, 1)
		drawer.FitRegion(region)
		world.SetDebugDrawer(drawer)
		if err := world.DebugDraw(region, opts); err != nil {
			return err
		}
		screen.Clear()
		drawer.Present(screen)
		return nil
	}
	if err := draw(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				if err := draw(); err != nil {
					return err
				}
			}
		}
	}
}

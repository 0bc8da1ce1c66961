package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/aarnaud/vkwsamples/bridge"
	"github.com/aarnaud/vkwsamples/config"
	"github.com/aarnaud/vkwsamples/engine"
	"github.com/aarnaud/vkwsamples/journal"
	"github.com/hako/durafmt"
	"gopkg.in/op/go-logging.v1"
)

const (
	notificationTimeout = 30 * time.Second
	configFileName      = "vkwsamples.toml"
	journalDirName      = "journal"
)

var (
	dataDirName = "vkwsamples"
	configFile  = flag.String("f", "", "Path to the config file.")
	sampleID    = flag.Int("s", -1, "Sample id to launch, overrides the config.")
	debug       = flag.Int("d", 0, "Enable golang debug service.")
	dumpJournal = flag.Bool("dump", false, "Print the renderer call journal and exit.")

	th *material.Theme

	// obtain the default data location
	dir, _ = app.DataDir()

	// path to default profile
	dataDir = filepath.Join(dir, dataDirName, "default")

	profilePath = flag.String("p", dataDir, "Path to application profile")

	log = logging.MustGetLogger("vkwsamples")

	errClosed = errors.New("window closed")
)

type App struct {
	w   *app.Window
	ops *op.Ops

	engine  *engine.Engine
	journal *journal.Journal
	bridge  *bridge.Bridge
	host    *host
	surface *windowSurface

	descriptor bridge.SampleDescriptor
	stack      pageStack
	started    time.Time
}

func descriptor(id int) bridge.SampleDescriptor {
	name := engine.DefaultRegistry.Name(id)
	if name == "" {
		name = fmt.Sprintf("Sample %d", id)
	}
	return bridge.SampleDescriptor{ID: id, Name: name}
}

func newApp(w *app.Window, cfg *config.Config, j *journal.Journal) *App {
	a := &App{
		w:          w,
		ops:        &op.Ops{},
		journal:    j,
		descriptor: descriptor(cfg.Sample.ID),
	}
	a.engine = engine.New(engine.DefaultRegistry, engine.Config{
		Framebuffer:   cfg.Renderer.Framebuffer(),
		FrameInterval: cfg.Renderer.FrameInterval,
	}, logging.MustGetLogger("engine"))

	var r bridge.Renderer = a.engine
	if j != nil {
		if err := j.Begin(a.descriptor); err != nil {
			log.Warningf("journal disabled: %v", err)
		} else {
			r = journal.NewRenderer(a.engine, j, logging.MustGetLogger("journal"))
		}
	}
	a.bridge = bridge.New(r, failurePresenter{a: a},
		bridge.WithLogger(logging.MustGetLogger("bridge")),
		bridge.WithFinisher(func() { a.w.Perform(system.ActionClose) }),
	)
	a.surface = newWindowSurface(w.Invalidate)
	a.host = newHost(a.bridge, a.surface)
	return a
}

func (a *App) Layout(gtx layout.Context) {
	a.update(gtx)
	if a.stack.Len() == 0 {
		a.surface.Layout(gtx)
		return
	}
	a.stack.Current().Layout(gtx)
}

func (a *App) update(gtx layout.Context) {
	// handle global shortcuts
	if backEvent(gtx) {
		a.w.Perform(system.ActionClose)
		return
	}
	if a.stack.Len() == 0 {
		return
	}
	if e := a.stack.Current().Event(gtx); e != nil {
		switch e.(type) {
		case failureAcknowledged:
			a.stack.Pop()
			a.bridge.OnFailureAcknowledged()
		}
	}
}

// shutdown ends the session when the window is destroyed
func (a *App) shutdown(err error) error {
	a.host.destroy()
	log.Noticef("%s session ended after %s, %d frames", a.descriptor.Name,
		durafmt.ParseShort(time.Since(a.started)), a.engine.Frames())
	if a.journal != nil {
		if cerr := a.journal.Close(); cerr != nil {
			log.Warningf("failed to close journal: %v", cerr)
		}
	}
	if err != nil {
		return err
	}
	return errClosed
}

func (a *App) run() error {
	a.started = time.Now()
	if err := a.bridge.OnSessionCreate(a.descriptor); err != nil {
		log.Errorf("%s: %v", a.descriptor.Name, err)
	}

	evCh := make(chan event.Event)
	ackCh := make(chan struct{})
	go func() {
		for {
			ev := a.w.Event()
			evCh <- ev
			<-ackCh
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()

	for e := range evCh {
		err := a.handleGioEvents(e)
		ackCh <- struct{}{}
		if errors.Is(err, errClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	path := *configFile
	if path == "" {
		p := filepath.Join(*profilePath, configFileName)
		if _, err := os.Stat(p); err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.LoadFile(path)
}

func openJournal(cfg *config.Config) (*journal.Journal, error) {
	dir := filepath.Join(*profilePath, journalDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return journal.Open(dir, journal.Options{
		MaxRecords:  cfg.Journal.MaxRecords,
		MaxSessions: cfg.Journal.MaxSessions,
	}, logging.MustGetLogger("badger"))
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := setupLogging(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if *sampleID >= 0 {
		cfg.Sample.ID = *sampleID
	}

	if *debug != 0 {
		go func() {
			http.ListenAndServe(fmt.Sprintf("localhost:%d", *debug), nil)
		}()
		runtime.SetMutexProfileFraction(1)
		runtime.SetBlockProfileRate(1)
	}

	if *dumpJournal {
		j, err := openJournal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open journal: %v\n", err)
			os.Exit(1)
		}
		defer j.Close()
		if err := dump(os.Stdout, j); err != nil {
			fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		}
		return
	}

	var j *journal.Journal
	if !cfg.Journal.Disable {
		if j, err = openJournal(cfg); err != nil {
			log.Warningf("journal disabled: %v", err)
			j = nil
		}
	}

	// Start graphical user interface.
	uiMain(cfg, j)
}

func uiMain(cfg *config.Config, j *journal.Journal) {
	go func() {
		w := new(app.Window)
		w.Option(app.Size(unit.Dp(400), unit.Dp(711)),
			app.Title(descriptor(cfg.Sample.ID).Name),
			app.NavigationColor(rgb(0x0)),
			app.StatusColor(rgb(0x0)),
		)

		// theme must be declared AFTER NewWindow on android
		th = newTheme()

		if err := newApp(w, cfg, j).run(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

type (
	C = layout.Context
	D = layout.Dimensions
)

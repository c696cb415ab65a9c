package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/command"
	"github.com/dmitrijs2005/timekeeper/internal/config"
	"github.com/dmitrijs2005/timekeeper/internal/factory"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/dmitrijs2005/timekeeper/internal/payroll"
	"github.com/dmitrijs2005/timekeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/timekeeper/internal/store"
	"golang.org/x/term"
)

var (
	// nowFn is a test seam for the wall clock.
	nowFn = time.Now

	// isTerminal is a test seam for term.IsTerminal.
	isTerminal = term.IsTerminal
)

type App struct {
	config   *config.Config
	store    *store.Store
	factory  *factory.Factory
	executor *command.Executor
	logger   logging.Logger
	loc      *time.Location
	styles   styles
	closeFn  repomanager.CloseFunc

	mu         sync.RWMutex
	schedule   models.WorkSchedule
	rates      models.PayRates
	multiplier float64

	warned map[string]struct{}
}

// NewApp opens storage for cfg and loads (or seeds) the store.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	persister, closeFn, err := repomanager.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a, err := newApp(cfg, persister, logger)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	a.closeFn = closeFn

	if err := a.store.Init(ctx); err != nil {
		_ = closeFn()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, persister store.Persister, logger logging.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	policy, err := store.ParseActiveEntryPolicy(cfg.ActiveEntryPolicy)
	if err != nil {
		return nil, err
	}

	f := factory.New()
	opts := []store.Option{store.WithActiveEntryPolicy(policy)}
	if cfg.SeedDefaults {
		opts = append(opts, store.WithSeedData(store.DefaultSeed(loc, f)))
	}
	st := store.New(persister, logger, opts...)

	return &App{
		config:     cfg,
		store:      st,
		factory:    f,
		executor:   command.NewExecutor(st, f, logger),
		logger:     logger.With("component", "cli"),
		loc:        loc,
		styles:     newStyles(),
		closeFn:    func() error { return nil },
		schedule:   cfg.Schedule(),
		rates:      cfg.Rates(),
		multiplier: cfg.OvertimeMultiplier,
		warned:     make(map[string]struct{}),
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.closeFn()
}

// Run serves the REPL on in until EOF or "exit". The session watcher runs
// for as long as Run does.
func (a *App) Run(ctx context.Context, in io.Reader) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartSessionWatcher(ctx, a.config.WatchInterval, a.config.LongSessionAfter)

	prompt := func() string { return "" }
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		printlnFn("timekeeper (type 'help' for commands)")
		prompt = a.prompt
	}

	runREPL(ctx, a, prompt, bufio.NewScanner(in))
}

func (a *App) prompt() string {
	return "tk> "
}

func (a *App) now() time.Time {
	return nowFn().In(a.loc)
}

func (a *App) payrollSettings() (models.WorkSchedule, models.PayRates, float64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.schedule, a.rates, a.multiplier
}

// StartSessionWatcher logs a warning once per entry that stays open longer
// than threshold. It returns when ctx is done.
func (a *App) StartSessionWatcher(ctx context.Context, interval, threshold time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkLongSessions(ctx, threshold)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkLongSessions(ctx context.Context, threshold time.Duration) {
	now := a.now()
	for _, e := range a.store.TimeEntries() {
		if !e.IsOpen() || now.Sub(e.StartTime) < threshold {
			continue
		}

		a.mu.Lock()
		_, seen := a.warned[e.ID]
		a.warned[e.ID] = struct{}{}
		a.mu.Unlock()
		if seen {
			continue
		}

		name := e.UserID
		if u, ok := a.store.UserByID(e.UserID); ok {
			name = u.FullName()
		}
		a.logger.Warn(ctx, "session open for a long time",
			"entry_id", e.ID, "user", name, "elapsed", payroll.ElapsedClock(e.StartTime, now))
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/lognamefilter/internal/logfilter/common/log"
	"github.com/haukened/lognamefilter/internal/logfilter/config"
	"github.com/haukened/lognamefilter/internal/logfilter/domain"
	"github.com/haukened/lognamefilter/internal/logfilter/filter"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "lognamefilterd"
)

// Application holds the configured filter and its logger.
type Application struct {
	config *config.AppConfig
	filter *filter.LoggerNameFilter
	logger log.Logger
}

func main() {
	// Load configuration from file and environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	app, err := buildApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Startup error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging with the filter installed
	err = log.Configure(cfg.Env, cfg.LogLevel, log.WithNameFilter(app.filter))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}
	app.logger = log.Named(appName)

	app.logger.Info(map[string]any{
		"version":          version,
		"env":              cfg.Env,
		"log_level":        cfg.LogLevel,
		"marker_substring": cfg.MarkerSubstring,
	}, "Starting logger name filter")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		app.logger.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		app.logger.Fatal(map[string]any{"error": err}, "Classification failed")
	}
}

// buildApplication constructs the filter from configuration.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	f, err := filter.New(cfg.MarkerSubstring)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return &Application{
		config: cfg,
		filter: f,
		logger: log.NewNoopLogger(),
	}, nil
}

// maxLoggerNameLen caps a single stdin line. bufio's 64 KiB default is too small
// for generated logger names.
const maxLoggerNameLen = 16 * 1024 * 1024

// Run classifies every logger name in args, or every line of in when args is empty,
// and writes one "DECISION<TAB>name" line per input to out.
func (app *Application) Run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)

	var denied, total int
	emit := func(name string) error {
		d := app.filter.Decide(domain.NamedEvent(name))
		total++
		if d.IsDeny() {
			denied++
		}
		app.logger.Debug(map[string]any{"logger_name": name, "decision": d.String()}, "Classified logger name")
		if _, err := fmt.Fprintf(w, "%s\t%s\n", d, name); err != nil {
			return fmt.Errorf("failed to write decision: %w", err)
		}
		return nil
	}

	if len(args) > 0 {
		for _, name := range args {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(name); err != nil {
				return err
			}
		}
	} else if err := app.scan(ctx, in, emit); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write decision: %w", err)
	}

	app.logger.Info(map[string]any{
		"total":  total,
		"denied": denied,
	}, "Classification finished")
	return nil
}

// scan feeds each line of in to emit until EOF or ctx is done.
// Reading happens on its own goroutine so a blocked read does not hold off cancellation;
// that goroutine stays parked in Read until in returns.
func (app *Application) scan(ctx context.Context, in io.Reader, emit func(string) error) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLoggerNameLen)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- fmt.Errorf("failed to read logger names: %w", err)
			return
		}
		errc <- nil
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name, ok := <-lines:
			if !ok {
				return <-errc
			}
			if err := emit(name); err != nil {
				return err
			}
		}
	}
}

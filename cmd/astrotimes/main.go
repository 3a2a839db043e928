// Command astrotimes shows sun and moon rise, set, twilight, and phase
// times for an observer, as a terminal UI or as JSON/HTML exports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/FunKite/astrotimes/internal/astro"
	"github.com/FunKite/astrotimes/internal/calendar"
	"github.com/FunKite/astrotimes/internal/city"
	"github.com/FunKite/astrotimes/internal/config"
	"github.com/FunKite/astrotimes/internal/logging"
	"github.com/FunKite/astrotimes/internal/report"
	"github.com/FunKite/astrotimes/internal/state"
	"github.com/FunKite/astrotimes/internal/ui"
)

// CLI flags for observer selection and headless modes
var (
	latFlag    float64
	lonFlag    float64
	elevFlag   float64
	cityFlag   string
	tzFlag     string
	saveFlag   bool
	jsonMode   bool
	atFlag     string
	watchEvery time.Duration

	calendarMode bool
	startFlag    string
	endFlag      string
	formatFlag   string
	outFlag      string
)

const (
	defaultRefresh = 10 * time.Second
	minRefresh     = 1 * time.Second
	maxRefresh     = 5 * time.Minute

	dateLayout = "2006-01-02"
)

func main() {
	refresh := flag.Duration("refresh", defaultRefresh, "Position refresh interval (e.g., 10s, 1m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Float64Var(&latFlag, "lat", 91, "Observer latitude in degrees (+N)")
	flag.Float64Var(&lonFlag, "lon", 181, "Observer longitude in degrees (+E)")
	flag.Float64Var(&elevFlag, "elev", 0, "Observer elevation in meters")
	flag.StringVar(&cityFlag, "city", "", "Look up observer from the built-in city table")
	flag.StringVar(&tzFlag, "tz", "", "IANA time zone (e.g., America/New_York)")
	flag.BoolVar(&saveFlag, "save", false, "Save the resolved observer as the default")
	flag.BoolVar(&jsonMode, "json", false, "Print a JSON snapshot instead of the TUI")
	flag.StringVar(&atFlag, "at", "", "Snapshot instant as YYYY-MM-DDTHH:MM (default: now)")
	flag.DurationVar(&watchEvery, "watch", 0, "Repeat the JSON snapshot at interval (e.g., 30s)")
	flag.BoolVar(&calendarMode, "calendar", false, "Export a day-by-day calendar")
	flag.StringVar(&startFlag, "start", "", "Calendar start date YYYY-MM-DD (default: 1st of this month)")
	flag.StringVar(&endFlag, "end", "", "Calendar end date YYYY-MM-DD (default: last of start's month)")
	flag.StringVar(&formatFlag, "format", "json", "Calendar format: json or html")
	flag.StringVar(&outFlag, "out", "-", "Calendar output file (- for stdout)")
	flag.Parse()

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	loc, tz, cityName, err := resolveObserver(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if saveFlag {
		cfg := &config.Config{
			Lat:   loc.Lat,
			Lon:   loc.Lon,
			ElevM: loc.ElevM,
			TZ:    tz.String(),
			City:  cityName,
		}
		if err := cfg.Save(); err != nil {
			logger.Warn("Could not save config: %v", err)
		} else if path, err := config.Path(); err == nil {
			logger.Info("Saved observer to %s", path)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if calendarMode {
		if err := runCalendar(loc, tz); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// A pipe gets the JSON snapshot even without -json.
	if jsonMode || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := runSnapshot(ctx, loc, tz, cityName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runTUI(ctx, loc, tz, cityName, *refresh, *logLevel)
}

// resolveObserver merges flags, -city lookup, and the saved config, in
// that order of preference.
func resolveObserver(logger *logging.Logger) (astro.Location, *time.Location, string, error) {
	lat, lon, elev := latFlag, lonFlag, elevFlag
	tzName := tzFlag
	cityName := ""

	haveCoords := lat >= -90 && lat <= 90 && lon > -180 && lon <= 180

	if cityFlag != "" {
		c, ok := city.FindExact(cityFlag)
		if !ok {
			matches := city.Search(cityFlag)
			if len(matches) == 0 {
				return astro.Location{}, nil, "", fmt.Errorf("unknown city %q", cityFlag)
			}
			c = matches[0].City
			logger.Info("Matched %q to %s", cityFlag, c.Label())
		}
		if !haveCoords {
			lat, lon, elev = c.Lat, c.Lon, c.ElevM
			haveCoords = true
		}
		if tzName == "" {
			tzName = c.TZ
		}
		cityName = c.Label()
	}

	if !haveCoords || tzName == "" {
		cfg, err := config.Load()
		if err != nil {
			return astro.Location{}, nil, "", err
		}
		if cfg != nil {
			if !haveCoords {
				lat, lon, elev = cfg.Lat, cfg.Lon, cfg.ElevM
				haveCoords = true
			}
			if tzName == "" {
				tzName = cfg.TZ
			}
			if cityName == "" {
				cityName = cfg.City
			}
		}
	}

	if !haveCoords {
		return astro.Location{}, nil, "",
			fmt.Errorf("no observer: pass -lat/-lon, -city, or save a config with -save")
	}
	if tzName == "" {
		tzName = "UTC"
	}

	loc, err := astro.NewLocation(lat, lon, elev)
	if err != nil {
		return astro.Location{}, nil, "", err
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return astro.Location{}, nil, "", fmt.Errorf("load time zone %q: %w", tzName, err)
	}
	return loc, tz, cityName, nil
}

// runSnapshot prints the report JSON once, or repeatedly in watch mode.
func runSnapshot(ctx context.Context, loc astro.Location, tz *time.Location, cityName string) error {
	instant := func() (time.Time, error) {
		if atFlag == "" {
			return time.Now().In(tz), nil
		}
		t, err := time.ParseInLocation("2006-01-02T15:04", atFlag, tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse -at %q: %w", atFlag, err)
		}
		return t, nil
	}

	outputOnce := func() error {
		now, err := instant()
		if err != nil {
			return err
		}
		return report.WriteJSON(os.Stdout, report.Build(loc, tz, now, cityName))
	}

	if watchEvery == 0 {
		return outputOnce()
	}

	if err := outputOnce(); err != nil {
		return err
	}
	ticker := time.NewTicker(watchEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// runCalendar exports the -start..-end range as JSON or HTML.
func runCalendar(loc astro.Location, tz *time.Location) error {
	now := time.Now().In(tz)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, tz)
	if startFlag != "" {
		t, err := time.ParseInLocation(dateLayout, startFlag, tz)
		if err != nil {
			return fmt.Errorf("parse -start %q: %w", startFlag, err)
		}
		start = t
	}
	end := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, tz).AddDate(0, 1, -1)
	if endFlag != "" {
		t, err := time.ParseInLocation(dateLayout, endFlag, tz)
		if err != nil {
			return fmt.Errorf("parse -end %q: %w", endFlag, err)
		}
		end = t
	}

	rows, err := calendar.GenerateParallel(loc, tz, start, end, 0)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFlag != "" && outFlag != "-" {
		f, err := os.Create(outFlag)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch formatFlag {
	case "json":
		return calendar.WriteJSON(out, rows)
	case "html":
		title := fmt.Sprintf("Sun & Moon — %s to %s",
			start.Format(dateLayout), end.Format(dateLayout))
		return calendar.WriteHTML(out, title, rows)
	default:
		return fmt.Errorf("unknown format %q (want json or html)", formatFlag)
	}
}

// runTUI starts the Bubble Tea program with a background compute loop.
// Logs go to a file so they do not corrupt the alternate screen.
func runTUI(ctx context.Context, loc astro.Location, tz *time.Location, cityName string, refresh time.Duration, logLevel string) {
	logger := logging.Discard()
	if cacheDir, err := os.UserCacheDir(); err == nil {
		logPath := filepath.Join(cacheDir, "astrotimes.log")
		if fl, err := logging.NewFile(logging.ParseLevel(logLevel), logPath); err == nil {
			logger = fl
			defer logger.Close()
		}
	}

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = refresh
	stateMgr := state.NewManager(stateCfg)

	model := ui.New(stateMgr, loc, tz)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go runComputeLoop(ctx, loc, tz, cityName, stateMgr, p, logger)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func runComputeLoop(ctx context.Context, loc astro.Location, tz *time.Location, cityName string, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	doCompute(loc, tz, cityName, stateMgr, p, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Compute loop shutting down")
			return
		case <-ticker.C:
			doCompute(loc, tz, cityName, stateMgr, p, logger)
		}
	}
}

func doCompute(loc astro.Location, tz *time.Location, cityName string, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	started := time.Now()
	snap := report.Build(loc, tz, started.In(tz), cityName)
	elapsed := time.Since(started)

	logger.Debug("Computed %d events, %d phases in %v",
		len(snap.Events), len(snap.LunarPhases), elapsed)

	stateMgr.Update(snap, elapsed, nil)
	p.Send(ui.DataUpdateMsg{State: stateMgr.Snapshot()})
}

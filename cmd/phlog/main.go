package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bench-labs/phlog/internal/adapters/fs"
	logAdapter "github.com/bench-labs/phlog/internal/adapters/log"
	"github.com/bench-labs/phlog/internal/cliconfig"
	"github.com/bench-labs/phlog/pkg/phlog"
	"github.com/bench-labs/phlog/plugins/chartbounds"
)

const helpDescription = `
Record a serial bench pH meter into a CSV log and a live chart.

Highlights:
  - Reads the meter's serial feed and extracts every pH value it prints.
  - Appends each reading to a CSV log and redraws a chart PNG as it arrives.
  - Stopping preserves the session; restarting resumes with continuous
    elapsed time. Send SIGUSR1 to discard the session and start fresh.
  - Remembers the selected port across runs; configure via file, env, or flags.
  - Edit the [chart] section of the config file while recording to rescale
    the chart axes live.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  phlog --list-ports
  phlog --port /dev/ttyUSB0 --output-dir ~/runs --output-file titration-01
  phlog --config $HOME/.phlog/config.toml --baud 9600
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var listPorts bool

	logA := logAdapter.NewZerologAdapter()
	log := logA.Logger()

	root := &cobra.Command{
		Use:     "phlog",
		Short:   "Record a serial bench pH meter into a CSV log and a live chart",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listPorts {
				return printPorts()
			}

			// Determine config path
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			configInUse := ""
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
				configInUse = cfgFile
			}

			// Environment variables override file config but are overridden
			// by flags (checked via changed map)
			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.SettingsDir == "" {
				cfg.SettingsDir = cliconfig.DefaultSettingsDir()
			}

			// Fall back to the port saved on a previous run.
			settingsRepo := fs.NewSettingsFileRepository(cfg.SettingsDir)
			if cfg.Port == "" && cfg.SettingsDir != "" {
				saved, err := settingsRepo.Load(cmd.Context())
				if err != nil {
					log.Warn().Err(err).Msg("failed to load saved settings")
				} else if saved.Port != "" {
					cfg.Port = saved.Port
					log.Info().Str("port", cfg.Port).Msg("using saved port")
				}
			}

			// The chart lives next to the CSV log unless placed explicitly.
			if cfg.ChartPath == "" && cfg.OutputDir != "" {
				cfg.ChartPath = filepath.Join(cfg.OutputDir, "chart.png")
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			libCfg := phlog.Config{
				Port:         cfg.Port,
				BaudRate:     cfg.BaudRate,
				OutputDir:    cfg.OutputDir,
				OutputFile:   cfg.OutputFile,
				ChartPath:    cfg.ChartPath,
				SettingsDir:  cfg.SettingsDir,
				PollInterval: cfg.PollInterval,
				Bounds: phlog.AxisBounds{
					XMin: cfg.XMin,
					XMax: cfg.XMax,
					YMin: cfg.YMin,
					YMax: cfg.YMax,
				},
				ConfigPath: configInUse,
			}

			events := &consoleEvents{log: logA, crashed: make(chan struct{})}
			rec, err := phlog.New(libCfg,
				phlog.WithLogger(logA),
				phlog.WithEventHandler(events),
				// Live chart axis adjustment from the config file
				chartbounds.WithDefaultChartBounds(),
			)
			if err != nil {
				return fmt.Errorf("create recorder: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			resetCh := make(chan os.Signal, 1)
			signal.Notify(resetCh, syscall.SIGUSR1)

			if err := rec.Start(ctx); err != nil {
				return fmt.Errorf("start recorder: %w", err)
			}
			if target := rec.OutputPath(); target != "" {
				log.Info().Str("csv", target).Msg("recording")
			} else {
				log.Warn().Msg("no output directory and file configured, readings stay in memory")
			}

			for {
				select {
				case <-sigCh:
					log.Info().Msg("received signal, stopping...")
					if err := rec.Stop(); err != nil {
						return fmt.Errorf("stop recorder: %w", err)
					}
					if err := rec.SaveSettings(context.Background()); err != nil {
						log.Warn().Err(err).Msg("failed to save settings")
					}
					log.Info().Int("samples", rec.Len()).Msg("session saved")
					return nil

				case <-resetCh:
					log.Info().Msg("received SIGUSR1, resetting session...")
					if err := rec.Reset(); err != nil {
						log.Error().Err(err).Msg("reset failed")
						continue
					}
					// Start a new session immediately.
					if err := rec.Start(ctx); err != nil {
						return fmt.Errorf("restart recorder: %w", err)
					}
					log.Info().Msg("new session started")

				case <-events.crashed:
					return fmt.Errorf("recorder crashed, check the device and restart")
				}
			}
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.phlog/config.toml)")
	root.Flags().StringVar(&cfg.Port, "port", cfg.Port, "serial port of the meter (e.g. /dev/ttyUSB0, COM3)")
	root.Flags().IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "serial baud rate")
	root.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for the CSV log")
	root.Flags().StringVar(&cfg.OutputFile, "output-file", cfg.OutputFile, "CSV log filename (.csv appended if missing)")
	root.Flags().StringVar(&cfg.ChartPath, "chart", cfg.ChartPath, "chart PNG path (defaults to chart.png in the output directory)")
	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "pause between empty serial polls")
	root.Flags().StringVar(&cfg.SettingsDir, "settings-dir", cfg.SettingsDir, "directory for persisted settings (default: $HOME/.phlog)")
	root.Flags().BoolVar(&listPorts, "list-ports", false, "list available serial ports and exit")

	root.Flags().Float64Var(&cfg.XMin, "x-min", cfg.XMin, "chart X axis minimum (elapsed minutes)")
	root.Flags().Float64Var(&cfg.XMax, "x-max", cfg.XMax, "chart X axis maximum (elapsed minutes)")
	root.Flags().Float64Var(&cfg.YMin, "y-min", cfg.YMin, "chart Y axis minimum (pH)")
	root.Flags().Float64Var(&cfg.YMax, "y-max", cfg.YMax, "chart Y axis maximum (pH)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("phlog")
		os.Exit(1)
	}
}

func printPorts() error {
	names, err := phlog.ListPorts()
	if err != nil {
		return fmt.Errorf("list ports: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// consoleEvents echoes recorder events to the console log and signals a
// crash (unplugged device, port errors) to the main loop.
type consoleEvents struct {
	log     phlog.Logger
	crashed chan struct{}
	once    sync.Once
}

func (c *consoleEvents) OnStateChange(e phlog.StateChangeEvent) {
	if e.Current == phlog.StateCrashed {
		c.once.Do(func() { close(c.crashed) })
	}
}

func (c *consoleEvents) OnSampleRecorded(e phlog.SampleEvent) {
	c.log.Info("reading",
		phlog.Float64("ph", e.Sample.Value),
		phlog.Float64("elapsed_min", e.Sample.ElapsedMinutes),
		phlog.Int("total", e.Total))
}

func (c *consoleEvents) OnSourceError(e phlog.SourceErrorEvent) {
	c.log.Error("connection lost", phlog.Err(e.Err))
}

func (c *consoleEvents) OnStorageError(e phlog.StorageErrorEvent) {
	c.log.Error("failed to persist reading, keeping it in memory", phlog.Err(e.Err))
}

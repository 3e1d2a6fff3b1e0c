package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/javanhut/Zoha/config"
	"github.com/javanhut/Zoha/ipc"
	"github.com/javanhut/Zoha/window"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("zoha failed")
		return 1
	}
	return 0
}

type rootOptions struct {
	configPath    string
	signal        bool
	printConfig   bool
	printPalettes bool
	listMonitors  bool
	initConfig    bool
	dryRun        bool
	quiet         bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	root := &cobra.Command{
		Use:           "zoha",
		Short:         "Drop-down terminal for GTK",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.GetConfigPath()+")")
	flags.BoolVarP(&opts.signal, "signal", "s", false, "toggle the running instance and exit")
	flags.BoolVar(&opts.printConfig, "print-config", false, "print the effective configuration")
	flags.BoolVar(&opts.printPalettes, "print-palettes", false, "list the built-in palettes")
	flags.BoolVar(&opts.listMonitors, "list-monitors", false, "list connected monitors")
	flags.BoolVar(&opts.initConfig, "init-config", false, "write the default configuration to the config path")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "load the configuration and exit")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	return root
}

func runRoot(cmd *cobra.Command, opts rootOptions) error {
	ctx := cmd.Context()
	if opts.quiet {
		ctx = pslog.ContextWithLogger(ctx, pslog.NewWithOptions(os.Stderr, pslog.Options{
			Mode:     pslog.ModeConsole,
			MinLevel: pslog.ErrorLevel,
		}))
	}
	logger := pslog.Ctx(ctx)
	out := cmd.OutOrStdout()

	if opts.signal {
		return ipc.SendToggle(ctx)
	}
	if opts.printPalettes {
		printPalettes(out)
		return nil
	}
	if opts.initConfig {
		return initConfig(opts.configPath, logger)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	switch {
	case opts.printConfig:
		return cfg.Encode(out)
	case opts.listMonitors:
		return printMonitors(out)
	case opts.dryRun:
		logger.Info("configuration ok", "monitor", cfg.Display.Monitor, "palette", cfg.Color.Palette)
		return nil
	}

	if code := window.Run(ctx, cfg); code != 0 {
		return fmt.Errorf("application exited with status %d", code)
	}
	return nil
}

// initConfig writes the default configuration to path unless a file is
// already there.
func initConfig(path string, logger pslog.Logger) error {
	if path == "" {
		path = config.GetConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s: %w", path, os.ErrExist)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	logger.Info("config written", "path", path)
	return nil
}

func printPalettes(w io.Writer) {
	for _, p := range config.PaletteOptions() {
		fmt.Fprintf(w, "%-10s %s\n", p.Name, p.Label)
	}
}

func printMonitors(w io.Writer) error {
	gtk.Init()
	monitors, err := window.ListMonitors()
	if err != nil {
		return err
	}
	for _, m := range monitors {
		fmt.Fprintf(w, "%d: %s %s %s %dx%d+%d+%d\n",
			m.Index, m.Connector, m.Manufacturer, m.Model, m.Width, m.Height, m.X, m.Y)
	}
	return nil
}

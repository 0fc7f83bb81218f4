package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sumant1122/perftop/internal/config"
	"github.com/sumant1122/perftop/internal/header"
	"github.com/sumant1122/perftop/internal/logger"
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/meters"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/theme"
	"github.com/sumant1122/perftop/internal/ui"
)

var version = "dev"

const defaultWidth = 80

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Flags that may also come from PERFTOP_* variables.
var settingFlags = []string{
	"delay", "graph-delay", "theme", "monochrome", "ascii",
	"header-margin", "detailed-cpu-time", "account-guest", "log-file",
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perftop",
		Short: "htop-style meter header for the terminal",
		Long: `perftop samples CPU, memory, load, tasks and more and draws them as
bar, text, graph or LED meters in two columns.

Examples:
  perftop
  perftop --delay 500ms --theme Sand
  perftop --once --ascii
  PERFTOP_MONOCHROME=true perftop`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	f := cmd.Flags()
	f.Duration("delay", config.DefaultDelay, "refresh interval")
	f.Duration("graph-delay", 0, "interval between graph samples (defaults to --delay)")
	f.String("theme", "", "color theme: "+themeNames())
	f.Bool("monochrome", false, "draw without colors")
	f.Bool("ascii", false, "draw with ASCII glyphs only")
	f.Bool("header-margin", true, "pad the header from the terminal edge")
	f.Bool("detailed-cpu-time", false, "split CPU bars into nice, irq, softirq, steal and guest")
	f.Bool("account-guest", false, "count guest time in the summary CPU meter")
	f.String("config", "", "configuration file (default: search "+config.EnvConfig+", user config dir, ./perftop.toml)")
	f.String("log-file", "", "append log output to this file")
	f.Bool("once", false, "print the header once and exit")
	f.BoolP("version", "v", false, "print version information")

	for _, name := range settingFlags {
		_ = v.BindPFlag(viperKey(name), f.Lookup(name))
	}
	v.SetEnvPrefix("perftop")
	v.AutomaticEnv()
	return cmd
}

func viperKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func themeNames() string {
	names := make([]string, len(theme.Themes))
	for i, t := range theme.Themes {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if ok, _ := cmd.Flags().GetBool("version"); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "perftop %s\n", version)
		return nil
	}

	if path := v.GetString("log_file"); path != "" {
		closer, err := logger.OpenFile(path)
		if err != nil {
			return err
		}
		defer closer.Close()
	}
	log := logger.NewEnvLogger("[perftop]")

	explicit, _ := cmd.Flags().GetString("config")
	cfg, cfgPath, err := loadConfig(explicit, log)
	if err != nil {
		return err
	}
	cfg = resolve(v, cfg)
	log.Info("starting perftop %s", version)

	once, _ := cmd.Flags().GetBool("once")
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !once && !interactive {
		log.Info("stdout is not a terminal, printing once")
		once = true
	}

	store := monitor.NewStore()
	sampler := monitor.NewSampler(monitor.SystemProbes(), monitor.WithLogger(logger.NewEnvLogger("[monitor]")))
	registry := meters.NewRegistry(store, meters.Settings{
		DetailedCPUTime:        cfg.DetailedCPUTime,
		AccountGuestInCPUMeter: cfg.AccountGuestInCPUMeter,
	})
	hdr := header.New(registry, cfg.HeaderMargin, logger.NewEnvLogger("[header]"))
	defer hdr.Destroy()
	if err := hdr.Populate(cfg.Columns); err != nil {
		log.Warn("layout: %v", err)
	}

	idx := themeIndex(cfg, lipgloss.ColorProfile(), log)
	ctx := renderContext(cfg, idx)

	if once {
		return printOnce(cmd.Context(), cmd.OutOrStdout(), hdr, sampler, store, &ctx, cfg.Delay.Duration, terminalWidth())
	}

	model := ui.NewModel(ui.Deps{
		Header:     hdr,
		Registry:   registry,
		Sampler:    sampler,
		Store:      store,
		Context:    ctx,
		ThemeIndex: idx,
		Delay:      cfg.Delay.Duration,
		Config:     cfg,
		ConfigPath: cfgPath,
		Log:        logger.NewEnvLogger("[ui]"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadConfig reads the file named by --config, or searches the default
// locations when none was given.
func loadConfig(explicit string, log logger.Logger) (config.Config, string, error) {
	if explicit == "" {
		cfg, path := config.Load(log)
		return cfg, path, nil
	}
	cfg, err := config.LoadFile(explicit)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, explicit, nil
}

// resolve layers flags and PERFTOP_* variables over cfg. File values become
// viper defaults so that an explicit flag or variable wins over them.
func resolve(v *viper.Viper, cfg config.Config) config.Config {
	v.SetDefault("delay", cfg.Delay.Duration)
	v.SetDefault("graph_delay", cfg.GraphDelay.Duration)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("monochrome", cfg.Monochrome)
	v.SetDefault("ascii", cfg.ASCII)
	v.SetDefault("header_margin", cfg.HeaderMargin)
	v.SetDefault("detailed_cpu_time", cfg.DetailedCPUTime)
	v.SetDefault("account_guest", cfg.AccountGuestInCPUMeter)

	delay := v.GetDuration("delay")
	if delay <= 0 {
		delay = config.DefaultDelay
	}
	cfg.Delay.Duration = max(delay, config.MinDelay)
	cfg.GraphDelay.Duration = v.GetDuration("graph_delay")
	if cfg.GraphDelay.Duration <= 0 {
		cfg.GraphDelay.Duration = cfg.Delay.Duration
	}
	cfg.Theme = v.GetString("theme")
	cfg.Monochrome = v.GetBool("monochrome")
	cfg.ASCII = v.GetBool("ascii")
	cfg.HeaderMargin = v.GetBool("header_margin")
	cfg.DetailedCPUTime = v.GetBool("detailed_cpu_time")
	cfg.AccountGuestInCPUMeter = v.GetBool("account_guest")
	return cfg
}

// themeIndex picks the configured theme, falling back to monochrome when
// asked to or when the terminal cannot show colors.
func themeIndex(cfg config.Config, profile termenv.Profile, log logger.Logger) int {
	if cfg.Monochrome || profile == termenv.Ascii {
		return theme.MonochromeIndex()
	}
	if cfg.Theme == "" {
		return 0
	}
	i := theme.Index(cfg.Theme)
	if i < 0 {
		log.Warn("unknown theme %q, using %s", cfg.Theme, theme.Themes[0].Name)
		return 0
	}
	return i
}

func renderContext(cfg config.Config, idx int) meter.RenderContext {
	glyphs := meter.UTF8Glyphs
	if cfg.ASCII || !utf8Locale() {
		glyphs = meter.ASCIIGlyphs
	}
	return meter.RenderContext{
		Glyphs:       glyphs,
		Palette:      theme.BuildStyles(idx).Palette,
		Monochrome:   theme.Themes[idx].Monochrome,
		GraphDelay:   cfg.GraphDelay.Duration,
		HeaderMargin: cfg.HeaderMargin,
	}
}

// utf8Locale reports whether the first set locale variable names a UTF-8
// charset.
func utf8Locale() bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(name); v != "" {
			v = strings.ToLower(v)
			return strings.Contains(v, "utf-8") || strings.Contains(v, "utf8")
		}
	}
	return false
}

// printOnce takes two samples a delay apart so CPU and network rates have a
// baseline, then writes a single frame.
func printOnce(ctx context.Context, out io.Writer, hdr *header.Header, sampler *monitor.Sampler,
	store *monitor.Store, rc *meter.RenderContext, delay time.Duration, width int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sampler.Sample(ctx)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}
	store.Set(sampler.Sample(ctx))
	hdr.Update()

	_, err := fmt.Fprintln(out, ui.RenderFrame(hdr, rc, width))
	return err
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

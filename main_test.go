package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumant1122/perftop/internal/config"
	"github.com/sumant1122/perftop/internal/header"
	"github.com/sumant1122/perftop/internal/logger"
	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/meters"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/theme"
)

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "perftop dev\n", out.String())
}

func TestRejectsArguments(t *testing.T) {
	cmd := newRootCmd(viper.New())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestResolveFileValuesApply(t *testing.T) {
	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags(nil))

	file := config.Default()
	file.Delay.Duration = 3 * time.Second
	file.GraphDelay.Duration = 3 * time.Second
	file.Theme = "Sand"
	file.HeaderMargin = false

	cfg := resolve(v, file)
	assert.Equal(t, 3*time.Second, cfg.Delay.Duration)
	assert.Equal(t, "Sand", cfg.Theme)
	assert.False(t, cfg.HeaderMargin)
	assert.Equal(t, file.Columns, cfg.Columns)
}

func TestResolveFlagsBeatFile(t *testing.T) {
	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags([]string{"--delay", "500ms", "--theme", "Day", "--header-margin=true", "--ascii"}))

	file := config.Default()
	file.Delay.Duration = 3 * time.Second
	file.GraphDelay.Duration = 3 * time.Second
	file.Theme = "Sand"
	file.HeaderMargin = false

	cfg := resolve(v, file)
	assert.Equal(t, 500*time.Millisecond, cfg.Delay.Duration)
	assert.Equal(t, 3*time.Second, cfg.GraphDelay.Duration)
	assert.Equal(t, "Day", cfg.Theme)
	assert.True(t, cfg.HeaderMargin)
	assert.True(t, cfg.ASCII)
}

func TestResolveEnvBeatsFile(t *testing.T) {
	t.Setenv("PERFTOP_MONOCHROME", "true")
	t.Setenv("PERFTOP_DELAY", "2s")
	t.Setenv("PERFTOP_DETAILED_CPU_TIME", "true")

	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := resolve(v, config.Default())
	assert.True(t, cfg.Monochrome)
	assert.True(t, cfg.DetailedCPUTime)
	assert.Equal(t, 2*time.Second, cfg.Delay.Duration)
}

func TestResolveClampsDelay(t *testing.T) {
	v := viper.New()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags([]string{"--delay", "1ms"}))

	cfg := resolve(v, config.Default())
	assert.Equal(t, config.MinDelay, cfg.Delay.Duration)
	assert.Equal(t, config.DefaultDelay, cfg.GraphDelay.Duration)
}

func TestThemeIndex(t *testing.T) {
	log := logger.NewBufferLogger()
	cfg := config.Default()

	assert.Equal(t, 0, themeIndex(cfg, termenv.TrueColor, log))
	assert.Equal(t, theme.MonochromeIndex(), themeIndex(cfg, termenv.Ascii, log))

	cfg.Theme = "Day"
	assert.Equal(t, theme.Index("Day"), themeIndex(cfg, termenv.ANSI256, log))

	cfg.Theme = "Neon"
	assert.Equal(t, 0, themeIndex(cfg, termenv.ANSI256, log))
	assert.True(t, log.Contains("warn", `unknown theme "Neon"`))

	cfg.Monochrome = true
	assert.Equal(t, theme.MonochromeIndex(), themeIndex(cfg, termenv.TrueColor, log))
}

func TestUTF8Locale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.True(t, utf8Locale())

	t.Setenv("LC_ALL", "C")
	assert.False(t, utf8Locale())

	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	assert.False(t, utf8Locale())
}

func TestRenderContextGlyphs(t *testing.T) {
	t.Setenv("LC_ALL", "en_US.UTF-8")
	cfg := config.Default()
	assert.Same(t, meter.UTF8Glyphs, renderContext(cfg, 0).Glyphs)

	cfg.ASCII = true
	ctx := renderContext(cfg, theme.MonochromeIndex())
	assert.Same(t, meter.ASCIIGlyphs, ctx.Glyphs)
	assert.True(t, ctx.Monochrome)
	assert.Equal(t, config.DefaultDelay, ctx.GraphDelay)
}

func TestLoadConfigExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perftop.toml")
	require.NoError(t, os.WriteFile(path, []byte(`theme = "Sand"`), 0o644))

	cfg, loaded, err := loadConfig(path, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "Sand", cfg.Theme)

	_, _, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"), logger.Noop())
	assert.Error(t, err)
}

func TestPrintOnce(t *testing.T) {
	store := monitor.NewStore()
	registry := meters.NewRegistry(store, meters.Settings{
		Now: func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) },
	})
	hdr := header.New(registry, false, logger.Noop())
	t.Cleanup(hdr.Destroy)
	require.NoError(t, hdr.Populate([]config.Column{
		{Meters: []config.MeterEntry{{Name: "Hostname"}}},
		{Meters: []config.MeterEntry{{Name: "Clock"}}},
	}))

	sampler := monitor.NewSampler(monitor.Probes{}, monitor.WithLogger(logger.Noop()))
	ctx := renderContext(config.Default(), theme.MonochromeIndex())

	var out bytes.Buffer
	require.NoError(t, printOnce(context.Background(), &out, hdr, sampler, store, &ctx, time.Millisecond, 80))
	assert.Equal(t, "Hostname: (unknown)                     Time: 09:30:00                          \n", out.String())
	assert.False(t, strings.Contains(out.String(), "\x1b["))
}

func TestPrintOnceCancelled(t *testing.T) {
	store := monitor.NewStore()
	hdr := header.New(meters.NewRegistry(store, meters.Settings{}), false, logger.Noop())
	t.Cleanup(hdr.Destroy)
	sampler := monitor.NewSampler(monitor.Probes{}, monitor.WithLogger(logger.Noop()))
	rc := meter.RenderContext{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := printOnce(ctx, &bytes.Buffer{}, hdr, sampler, store, &rc, time.Hour, 80)
	assert.ErrorIs(t, err, context.Canceled)
}

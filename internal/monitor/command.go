package monitor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const commandTimeout = 2 * time.Second

func runQuickCmd(ctx context.Context, cmd []string, timeout time.Duration) (string, error) {
	if _, err := exec.LookPath(cmd[0]); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	c := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out
	if err := c.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseUptimeLoad extracts the three load averages from uptime(1) output,
// which prints "load average:" on Linux and "load averages:" on macOS.
func parseUptimeLoad(out string) ([3]float64, bool) {
	var load [3]float64
	line := strings.TrimSpace(out)
	idx := strings.Index(line, "load average")
	if idx == -1 {
		return load, false
	}
	part := line[idx:]
	colon := strings.Index(part, ":")
	if colon == -1 {
		return load, false
	}
	fields := strings.FieldsFunc(part[colon+1:], func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) < 3 {
		return load, false
	}
	for i := range load {
		v, err := parseFloat(fields[i])
		if err != nil {
			return load, false
		}
		load[i] = v
	}
	return load, true
}

func uptimeCommandLoad(ctx context.Context) ([3]float64, error) {
	out, err := runQuickCmd(ctx, []string{"uptime"}, commandTimeout)
	if err != nil {
		return [3]float64{}, err
	}
	load, ok := parseUptimeLoad(out)
	if !ok {
		return load, fmt.Errorf("no load average in %q", strings.TrimSpace(out))
	}
	return load, nil
}

// FormatRate formats a KB/s rate, switching to MB/s from 1024 KB/s.
func FormatRate(kbPerSec float64) string {
	if kbPerSec < 1024 {
		return fmt.Sprintf("%0.0fKB/s", kbPerSec)
	}
	return fmt.Sprintf("%0.1fMB/s", kbPerSec/1024.0)
}

package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPowerSupplyDir is where Linux exposes batteries and AC adapters.
const DefaultPowerSupplyDir = "/sys/class/power_supply"

var errNoBattery = errors.New("no battery found")

// readBattery reports the combined charge of every battery under dir and
// whether an AC adapter is online.
func readBattery(dir string) (Battery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Battery{}, err
	}
	var now, full float64
	ac := ACUnknown
	for _, e := range entries {
		supply := filepath.Join(dir, e.Name())
		switch readString(supply, "type") {
		case "Battery":
			if n, f, ok := batteryCharge(supply); ok {
				now += n
				full += f
			}
		case "Mains", "USB":
			switch readString(supply, "online") {
			case "1":
				ac = ACOnline
			case "0":
				if ac == ACUnknown {
					ac = ACOffline
				}
			}
		}
	}
	if full <= 0 {
		return Battery{}, errNoBattery
	}
	return Battery{Percent: min(now/full*100, 100), AC: ac}, nil
}

// batteryCharge prefers energy counters, then charge counters, then the
// capacity percentage.
func batteryCharge(supply string) (now, full float64, ok bool) {
	for _, pair := range [][2]string{{"energy_now", "energy_full"}, {"charge_now", "charge_full"}} {
		n, errN := readNumber(supply, pair[0])
		f, errF := readNumber(supply, pair[1])
		if errN == nil && errF == nil && f > 0 {
			return n, f, true
		}
	}
	if c, err := readNumber(supply, "capacity"); err == nil {
		return c, 100, true
	}
	return 0, 0, false
}

func readString(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readNumber(dir, name string) (float64, error) {
	return strconv.ParseFloat(readString(dir, name), 64)
}

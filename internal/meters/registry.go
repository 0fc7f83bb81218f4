// Package meters defines the concrete meter classes shown in the header
// and the registry that resolves configured meter names to classes.
package meters

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sumant1122/perftop/internal/meter"
	"github.com/sumant1122/perftop/internal/monitor"
	"github.com/sumant1122/perftop/internal/vector"
)

// ErrUnknownMeter is returned for names no class is registered under.
var ErrUnknownMeter = errors.New("unknown meter")

// Source supplies the latest measurements. *monitor.Store implements it.
type Source interface {
	Snapshot() monitor.Snapshot
}

// Settings are the user options that change what meters report.
type Settings struct {
	DetailedCPUTime        bool
	AccountGuestInCPUMeter bool
	// Now is the clock shown by the Clock meter.
	Now func() time.Time
}

// Registry holds every meter class. It borrows the classes, which are
// shared by all meters built from them.
type Registry struct {
	classes *vector.Vector[*meter.Class]
}

// NewRegistry builds the classes bound to src.
func NewRegistry(src Source, settings Settings) *Registry {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	r := &Registry{classes: vector.NewBorrowing[*meter.Class](0)}

	cpu := newCPUClass(src, settings)
	// A snapshot without CPU times is a failed read, not a topology
	// change, so the composites keep the last count they saw.
	lastCount := 0
	count := func() int {
		snap := src.Snapshot()
		if n := snap.CPUCount(); n > 0 {
			lastCount = n
		}
		return lastCount
	}
	for _, c := range []*meter.Class{
		cpu,
		newMemoryClass(src),
		newSwapClass(src),
		newLoadAverageClass(src),
		newLoadClass(src),
		newTasksClass(src),
		newUptimeClass(src),
		newBatteryClass(src),
		newHostnameClass(src),
		newClockClass(settings.Now),
		newNetworkIOClass(src),
		newCPUsClass("AllCPUs", "CPUs (1/1)", "CPUs (1/1): all CPUs", cpu, count, meter.AllRange, 1),
		newCPUsClass("LeftCPUs", "CPUs (1/2)", "CPUs (1/2): first half of list", cpu, count, meter.FirstHalfRange, 1),
		newCPUsClass("RightCPUs", "CPUs (2/2)", "CPUs (2/2): second half of list", cpu, count, meter.SecondHalfRange, 1),
		newCPUsClass("AllCPUs2", "CPUs (1&2/2)", "CPUs (1&2/2): all CPUs in 2 shorter columns", cpu, count, meter.AllRange, 2),
		newCPUsClass("LeftCPUs2", "CPUs (1-2/4)", "CPUs (1&2/4): first half in 2 shorter columns", cpu, count, meter.FirstHalfRange, 2),
		newCPUsClass("RightCPUs2", "CPUs (3-4/4)", "CPUs (3&4/4): second half in 2 shorter columns", cpu, count, meter.SecondHalfRange, 2),
	} {
		r.classes.Add(c)
	}
	return r
}

func byName(a, b *meter.Class) int {
	if strings.EqualFold(a.Name, b.Name) {
		return 0
	}
	return strings.Compare(a.Name, b.Name)
}

func byUIName(a, b *meter.Class) int {
	return strings.Compare(strings.ToLower(a.UIName), strings.ToLower(b.UIName))
}

// Lookup finds a class by name, ignoring case.
func (r *Registry) Lookup(name string) (*meter.Class, error) {
	i := r.classes.IndexOf(&meter.Class{Descriptor: meter.Descriptor{Name: name}}, byName)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeter, name)
	}
	return r.classes.Get(i), nil
}

// Classes returns the classes in registration order.
func (r *Registry) Classes() []*meter.Class {
	return r.classes.Items()
}

// Catalog returns the classes sorted by display name.
func (r *Registry) Catalog() []*meter.Class {
	sorted := vector.NewBorrowing[*meter.Class](r.classes.Len())
	for _, c := range r.classes.Items() {
		sorted.Add(c)
	}
	sorted.InsertionSort(byUIName)
	return sorted.Items()
}

// ParseName splits a configured meter name such as "CPU(2)" into the class
// name and parameter. A name without parentheses has parameter 0.
func ParseName(entry string) (string, int, error) {
	entry = strings.TrimSpace(entry)
	open := strings.IndexByte(entry, '(')
	if open < 0 {
		if entry == "" {
			return "", 0, fmt.Errorf("%w: empty name", ErrUnknownMeter)
		}
		return entry, 0, nil
	}
	if !strings.HasSuffix(entry, ")") || open == 0 {
		return "", 0, fmt.Errorf("malformed meter name %q", entry)
	}
	param, err := strconv.Atoi(entry[open+1 : len(entry)-1])
	if err != nil || param < 0 {
		return "", 0, fmt.Errorf("malformed meter parameter in %q", entry)
	}
	return entry[:open], param, nil
}

// New creates a meter from a configured name.
func (r *Registry) New(entry string) (*meter.Meter, error) {
	name, param, err := ParseName(entry)
	if err != nil {
		return nil, err
	}
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return meter.New(c, param), nil
}

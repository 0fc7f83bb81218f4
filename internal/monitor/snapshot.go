// Package monitor acquires system measurements for the header meters. A
// Sampler takes one Snapshot per refresh; the Store publishes the latest
// one to the meters.
package monitor

import (
	"sync"
	"time"
)

// CPU holds the share of one sampling period spent in each state, in
// percent. Guest time is not included in User or Nice.
type CPU struct {
	User    float64
	Nice    float64
	System  float64
	IRQ     float64
	SoftIRQ float64
	IOWait  float64
	Steal   float64
	Guest   float64
}

// Busy is the total non-idle share. IOWait counts as idle.
func (c CPU) Busy() float64 {
	return c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal + c.Guest
}

// Memory sizes are in KiB.
type Memory struct {
	Total     uint64
	Used      uint64
	Buffers   uint64
	Cached    uint64
	SwapTotal uint64
	SwapUsed  uint64
}

type Tasks struct {
	Total   int
	Running int
	Blocked int
}

type ACState int

const (
	ACUnknown ACState = iota
	ACOnline
	ACOffline
)

type Battery struct {
	Percent float64
	AC      ACState
}

// Snapshot is one refresh worth of measurements. Each Has flag reports
// whether the matching fields could be acquired.
type Snapshot struct {
	Time time.Time

	// CPUs[0] is the average over all CPUs, CPUs[i] is CPU i.
	CPUs []CPU

	Memory    Memory
	HasMemory bool

	Load    [3]float64
	HasLoad bool

	Tasks    Tasks
	HasTasks bool

	// Uptime is negative when unknown.
	Uptime time.Duration

	Hostname string

	// Network rates in KB/s summed over non-loopback interfaces.
	NetRx  float64
	NetTx  float64
	HasNet bool

	Battery    Battery
	HasBattery bool
}

// CPUCount is the number of individual CPUs in the snapshot.
func (s *Snapshot) CPUCount() int {
	return max(len(s.CPUs)-1, 0)
}

// Store holds the most recent snapshot. The sampler writes it from a
// command goroutine while the UI reads it.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStore() *Store {
	return &Store{snap: Snapshot{Uptime: -1}}
}

func (s *Store) Set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Snapshot returns the latest snapshot. The CPU slice is shared and must
// not be modified.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	"github.com/sumant1122/perftop/internal/logger"
)

// Probes are the acquisition functions a Sampler calls. SystemProbes
// returns the gopsutil implementations; tests substitute their own.
type Probes struct {
	CPUTimes      func(ctx context.Context, perCPU bool) ([]cpu.TimesStat, error)
	VirtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory    func(ctx context.Context) (*mem.SwapMemoryStat, error)
	LoadAvg       func(ctx context.Context) (*load.AvgStat, error)
	LoadMisc      func(ctx context.Context) (*load.MiscStat, error)
	Uptime        func(ctx context.Context) (uint64, error)
	HostInfo      func(ctx context.Context) (*host.InfoStat, error)
	NetIO         func(ctx context.Context, perNIC bool) ([]net.IOCountersStat, error)
	// LoadFallback is tried when LoadAvg fails.
	LoadFallback func(ctx context.Context) ([3]float64, error)
	Battery      func() (Battery, error)
}

func SystemProbes() Probes {
	return Probes{
		CPUTimes:      cpu.TimesWithContext,
		VirtualMemory: mem.VirtualMemoryWithContext,
		SwapMemory:    mem.SwapMemoryWithContext,
		LoadAvg:       load.AvgWithContext,
		LoadMisc:      load.MiscWithContext,
		Uptime:        host.UptimeWithContext,
		HostInfo:      host.InfoWithContext,
		NetIO:         net.IOCountersWithContext,
		LoadFallback:  uptimeCommandLoad,
		Battery:       func() (Battery, error) { return readBattery(DefaultPowerSupplyDir) },
	}
}

// Sampler turns cumulative counters into per-period rates. It keeps the
// previous counters between calls and must not be used concurrently.
type Sampler struct {
	probes Probes
	log    logger.Logger
	now    func() time.Time

	prevCPU   []cpu.TimesStat
	prevRx    uint64
	prevTx    uint64
	prevNetAt time.Time
	hostname  string
}

type Option func(*Sampler)

func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Sampler) { s.log = l }
}

func NewSampler(p Probes, opts ...Option) *Sampler {
	s := &Sampler{probes: p, log: logger.NewEnvLogger("[monitor]"), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample acquires one snapshot. Sources that fail are logged and left
// unset in the snapshot; Sample itself never fails.
func (s *Sampler) Sample(ctx context.Context) Snapshot {
	snap := Snapshot{Time: s.now(), Uptime: -1}
	s.sampleCPU(ctx, &snap)
	s.sampleMemory(ctx, &snap)
	s.sampleLoad(ctx, &snap)
	s.sampleTasks(ctx, &snap)
	s.sampleUptime(ctx, &snap)
	s.sampleNet(ctx, &snap)
	s.sampleBattery(&snap)
	snap.Hostname = s.sampleHostname(ctx)
	return snap
}

func (s *Sampler) sampleCPU(ctx context.Context, snap *Snapshot) {
	if s.probes.CPUTimes == nil {
		return
	}
	times, err := s.probes.CPUTimes(ctx, true)
	if err != nil || len(times) == 0 {
		s.log.Debug("cpu times unavailable: %v", err)
		return
	}
	snap.CPUs = make([]CPU, len(times)+1)
	if len(s.prevCPU) == len(times) {
		for i := range times {
			snap.CPUs[i+1] = cpuPercent(s.prevCPU[i], times[i])
		}
		snap.CPUs[0] = cpuPercent(sumTimes(s.prevCPU), sumTimes(times))
	} else if s.prevCPU != nil {
		s.log.Debug("cpu count changed from %d to %d", len(s.prevCPU), len(times))
	}
	s.prevCPU = times
}

func (s *Sampler) sampleMemory(ctx context.Context, snap *Snapshot) {
	if s.probes.VirtualMemory == nil {
		return
	}
	vm, err := s.probes.VirtualMemory(ctx)
	if err != nil {
		s.log.Debug("memory unavailable: %v", err)
		return
	}
	snap.Memory = Memory{
		Total:   vm.Total / 1024,
		Used:    vm.Used / 1024,
		Buffers: vm.Buffers / 1024,
		Cached:  vm.Cached / 1024,
	}
	snap.HasMemory = true
	if s.probes.SwapMemory == nil {
		return
	}
	swap, err := s.probes.SwapMemory(ctx)
	if err != nil {
		s.log.Debug("swap unavailable: %v", err)
		return
	}
	snap.Memory.SwapTotal = swap.Total / 1024
	snap.Memory.SwapUsed = swap.Used / 1024
}

func (s *Sampler) sampleLoad(ctx context.Context, snap *Snapshot) {
	if s.probes.LoadAvg != nil {
		avg, err := s.probes.LoadAvg(ctx)
		if err == nil {
			snap.Load = [3]float64{avg.Load1, avg.Load5, avg.Load15}
			snap.HasLoad = true
			return
		}
		s.log.Debug("load average unavailable: %v", err)
	}
	if s.probes.LoadFallback == nil {
		return
	}
	load, err := s.probes.LoadFallback(ctx)
	if err != nil {
		s.log.Debug("uptime fallback failed: %v", err)
		return
	}
	snap.Load = load
	snap.HasLoad = true
}

func (s *Sampler) sampleTasks(ctx context.Context, snap *Snapshot) {
	if s.probes.LoadMisc == nil {
		return
	}
	misc, err := s.probes.LoadMisc(ctx)
	if err != nil {
		s.log.Debug("task counts unavailable: %v", err)
		return
	}
	snap.Tasks = Tasks{Total: misc.ProcsTotal, Running: misc.ProcsRunning, Blocked: misc.ProcsBlocked}
	snap.HasTasks = true
}

func (s *Sampler) sampleUptime(ctx context.Context, snap *Snapshot) {
	if s.probes.Uptime == nil {
		return
	}
	secs, err := s.probes.Uptime(ctx)
	if err != nil {
		s.log.Debug("uptime unavailable: %v", err)
		return
	}
	snap.Uptime = time.Duration(secs) * time.Second
}

func (s *Sampler) sampleHostname(ctx context.Context) string {
	if s.hostname != "" || s.probes.HostInfo == nil {
		return s.hostname
	}
	info, err := s.probes.HostInfo(ctx)
	if err != nil {
		s.log.Debug("host info unavailable: %v", err)
		return ""
	}
	s.hostname = info.Hostname
	return s.hostname
}

func (s *Sampler) sampleNet(ctx context.Context, snap *Snapshot) {
	if s.probes.NetIO == nil {
		return
	}
	counters, err := s.probes.NetIO(ctx, true)
	if err != nil {
		s.log.Debug("network counters unavailable: %v", err)
		return
	}
	var rx, tx uint64
	found := false
	for _, c := range counters {
		if strings.HasPrefix(c.Name, "lo") {
			continue
		}
		rx += c.BytesRecv
		tx += c.BytesSent
		found = true
	}
	if !found {
		return
	}
	now := snap.Time
	prevAt := s.prevNetAt
	prevRx, prevTx := s.prevRx, s.prevTx
	s.prevNetAt, s.prevRx, s.prevTx = now, rx, tx

	// The first sample and counter resets have no rate.
	if prevAt.IsZero() || rx < prevRx || tx < prevTx {
		return
	}
	secs := now.Sub(prevAt).Seconds()
	if secs <= 0 {
		return
	}
	snap.NetRx = float64(rx-prevRx) / 1024.0 / secs
	snap.NetTx = float64(tx-prevTx) / 1024.0 / secs
	snap.HasNet = true
}

func (s *Sampler) sampleBattery(snap *Snapshot) {
	if s.probes.Battery == nil {
		return
	}
	b, err := s.probes.Battery()
	if err != nil {
		s.log.Debug("battery unavailable: %v", err)
		return
	}
	snap.Battery = b
	snap.HasBattery = true
}

func sumTimes(times []cpu.TimesStat) cpu.TimesStat {
	var t cpu.TimesStat
	for _, c := range times {
		t.User += c.User
		t.Nice += c.Nice
		t.System += c.System
		t.Idle += c.Idle
		t.Iowait += c.Iowait
		t.Irq += c.Irq
		t.Softirq += c.Softirq
		t.Steal += c.Steal
		t.Guest += c.Guest
		t.GuestNice += c.GuestNice
	}
	return t
}

func totalTime(t cpu.TimesStat) float64 {
	return t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
}

// cpuPercent converts two cumulative readings into shares of the period
// between them. User and nice time include guest time in the kernel's
// accounting, so it is moved out into Guest.
func cpuPercent(prev, cur cpu.TimesStat) CPU {
	delta := func(a, b float64) float64 { return max(b-a, 0) }
	total := delta(totalTime(prev), totalTime(cur))
	if total <= 0 {
		return CPU{}
	}
	pct := func(v float64) float64 { return v / total * 100 }
	guest := delta(prev.Guest, cur.Guest)
	guestNice := delta(prev.GuestNice, cur.GuestNice)
	return CPU{
		User:    pct(max(delta(prev.User, cur.User)-guest, 0)),
		Nice:    pct(max(delta(prev.Nice, cur.Nice)-guestNice, 0)),
		System:  pct(delta(prev.System, cur.System)),
		IRQ:     pct(delta(prev.Irq, cur.Irq)),
		SoftIRQ: pct(delta(prev.Softirq, cur.Softirq)),
		IOWait:  pct(delta(prev.Iowait, cur.Iowait)),
		Steal:   pct(delta(prev.Steal, cur.Steal)),
		Guest:   pct(guest + guestNice),
	}
}

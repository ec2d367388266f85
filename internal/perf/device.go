package perf

import (
	"errors"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/term"
)

// DeviceInfo is what the classifier knows about the machine.
// Zero values mean unknown.
type DeviceInfo struct {
	OS       string
	Mobile   bool
	Tablet   bool
	MemoryGB float64
	Cores    int
	ScreenW  int // Terminal columns
	ScreenH  int // Terminal rows
}

// largeScreenCells is the terminal area above which rendering counts as expensive.
const largeScreenCells = 240 * 70

// ErrNoCores is returned when the core count cannot be determined.
var ErrNoCores = errors.New("perf: core count unavailable")

// Classify maps device heuristics to a tier. Cores and memory add points,
// mobile and tablet form factors and very large screens take them away.
// A device without a known core count is LOW.
func Classify(d DeviceInfo) Tier {
	if d.Cores <= 0 {
		return TierLow
	}

	score := 0
	switch {
	case d.Cores >= 8:
		score += 2
	case d.Cores >= 4:
		score++
	}

	switch {
	case d.MemoryGB <= 0:
		score++ // unknown, assume a typical desktop
	case d.MemoryGB >= 8:
		score += 2
	case d.MemoryGB >= 4:
		score++
	}

	if d.Mobile {
		score -= 2
	} else if d.Tablet {
		score--
	}
	if d.ScreenW*d.ScreenH > largeScreenCells {
		score--
	}

	switch {
	case score >= 3:
		return TierHigh
	case score >= 1:
		return TierMedium
	default:
		return TierLow
	}
}

// Detect classifies the device returned by probe. A probe error yields LOW.
func Detect(probe func() (DeviceInfo, error)) (Tier, DeviceInfo) {
	if probe == nil {
		return TierLow, DeviceInfo{}
	}
	info, err := probe()
	if err != nil {
		return TierLow, info
	}
	return Classify(info), info
}

// HostDevice probes the running host: OS, logical cores, total memory and
// the size of the controlling terminal. Memory and terminal size stay zero
// when they cannot be read.
func HostDevice() (DeviceInfo, error) {
	return probeHost(hostMemory, hostCores)
}

func hostMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

func hostCores() (int, error) {
	return cpu.Counts(true)
}

// probeHost fills DeviceInfo from the given sources. A failed core count
// falls back to the runtime's view of the machine.
func probeHost(memory func() (uint64, error), cores func() (int, error)) (DeviceInfo, error) {
	info := DeviceInfo{OS: runtime.GOOS}
	info.Mobile = info.OS == "android" || info.OS == "ios"

	if n, err := cores(); err == nil && n > 0 {
		info.Cores = n
	} else {
		info.Cores = runtime.NumCPU()
	}
	if total, err := memory(); err == nil {
		info.MemoryGB = float64(total) / (1 << 30)
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		info.ScreenW, info.ScreenH = w, h
	}

	if info.Cores <= 0 {
		return info, ErrNoCores
	}
	return info, nil
}

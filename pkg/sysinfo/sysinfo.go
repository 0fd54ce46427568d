// Package sysinfo reports the host hardware a render runs on.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const gib = 1024 * 1024 * 1024

// Info describes the machine and Go runtime
type Info struct {
	CPUModel      string  `json:"cpuModel"`
	ClockGHz      float64 `json:"clockGHz"`
	PhysicalCores int     `json:"physicalCores"`
	LogicalCores  int     `json:"logicalCores"`
	TotalRAMGiB   float64 `json:"totalRamGiB"`
	FreeRAMGiB    float64 `json:"freeRamGiB"`
	Platform      string  `json:"platform"`
	GoVersion     string  `json:"goVersion"`
	GOMAXPROCS    int     `json:"gomaxprocs"`
}

// Collect gathers CPU, memory and platform details. Fields gopsutil cannot
// determine on this host are left zero; only a failure of every probe is an
// error.
func Collect() (Info, error) {
	info := Info{
		GoVersion:  runtime.Version(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	var failures []error

	if cpus, err := cpu.Info(); err != nil {
		failures = append(failures, fmt.Errorf("cpu info: %w", err))
	} else if len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
		info.ClockGHz = cpus[0].Mhz / 1000
	}

	if n, err := cpu.Counts(true); err == nil {
		info.LogicalCores = n
	} else {
		info.LogicalCores = runtime.NumCPU()
	}
	if n, err := cpu.Counts(false); err == nil {
		info.PhysicalCores = n
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		failures = append(failures, fmt.Errorf("memory info: %w", err))
	} else {
		info.TotalRAMGiB = float64(vm.Total) / gib
		info.FreeRAMGiB = float64(vm.Available) / gib
	}

	if h, err := host.Info(); err != nil {
		failures = append(failures, fmt.Errorf("host info: %w", err))
	} else if h.Platform != "" {
		info.Platform = fmt.Sprintf("%s %s (%s/%s)", h.Platform, h.PlatformVersion, h.OS, h.KernelArch)
	}

	if len(failures) == 3 {
		return info, failures[0]
	}
	return info, nil
}

// Summary returns a one-line description for log headers
func (i Info) Summary() string {
	model := i.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s, %d logical cores, %.1f GiB RAM, %s, %s",
		model, i.LogicalCores, i.TotalRAMGiB, i.Platform, i.GoVersion)
}

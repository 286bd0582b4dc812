package collect

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/util"
)

// HostFacts describes the machine the report runs on.
type HostFacts struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Uptime          time.Duration
	CPUs            int
	MemoryTotal     uint64
	MemoryAvailable uint64
	DiskPath        string
	DiskTotal       uint64
	DiskFree        uint64
}

// Resources returns the facts checked by config.CheckRequirements.
func (f *HostFacts) Resources() config.HostResources {
	return config.HostResources{
		CPUs:    f.CPUs,
		Memory:  f.MemoryTotal,
		Storage: f.DiskFree,
	}
}

// HostSource looks up host facts.
type HostSource interface {
	HostFacts(ctx context.Context) (*HostFacts, error)
}

// SystemHost reads host facts from the running system.
type SystemHost struct {
	// DiskPath is the filesystem whose usage is reported; defaults to ".".
	DiskPath string
}

// HostFacts implements HostSource. Host info is required; memory, CPU and
// disk lookups that fail leave their fields zero.
func (h *SystemHost) HostFacts(ctx context.Context) (*HostFacts, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	facts := &HostFacts{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Uptime:          time.Duration(info.Uptime) * time.Second,
		DiskPath:        util.FirstNonEmpty(h.DiskPath, "."),
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		facts.MemoryTotal = vm.Total
		facts.MemoryAvailable = vm.Available
	} else {
		util.Debug("memory lookup failed: %v", err)
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		facts.CPUs = n
	} else {
		util.Debug("cpu count failed: %v", err)
	}

	if usage, err := disk.UsageWithContext(ctx, facts.DiskPath); err == nil {
		facts.DiskTotal = usage.Total
		facts.DiskFree = usage.Free
	} else {
		util.Debug("disk usage for %s failed: %v", facts.DiskPath, err)
	}

	return facts, nil
}

// HostProvider reports host facts under the "server" section.
type HostProvider struct {
	Source HostSource
}

// Name implements Provider.
func (p *HostProvider) Name() string { return "server" }

// Collect implements Provider.
func (p *HostProvider) Collect(ctx context.Context, s *report.Section) error {
	facts, err := p.Source.HostFacts(ctx)
	if err != nil {
		return providerError(p.Name(), err)
	}

	server := s.Section("server")
	server.Set("hostname", facts.Hostname)
	server.Set("os", facts.OS)
	server.Set("platform", facts.Platform)
	server.Set("platform_version", facts.PlatformVersion)
	server.Set("kernel", facts.KernelVersion)
	server.Set("uptime", facts.Uptime.String())
	server.Set("cpus", facts.CPUs)
	server.Set("memory_total", humanize.IBytes(facts.MemoryTotal))
	server.Set("memory_available", humanize.IBytes(facts.MemoryAvailable))
	server.Set("disk_path", facts.DiskPath)
	server.Set("disk_total", humanize.IBytes(facts.DiskTotal))
	server.Set("disk_free", humanize.IBytes(facts.DiskFree))
	return nil
}

// RequirementsProvider checks configured minimum resources against the
// host and reports the outcome under "requirements".
type RequirementsProvider struct {
	Requirements *config.Requirements
	Source       HostSource
}

// Name implements Provider.
func (p *RequirementsProvider) Name() string { return "requirements" }

// Collect implements Provider.
func (p *RequirementsProvider) Collect(ctx context.Context, s *report.Section) error {
	if p.Requirements == nil {
		return nil
	}

	facts, err := p.Source.HostFacts(ctx)
	if err != nil {
		return providerError(p.Name(), err)
	}

	result := config.CheckRequirements(p.Requirements, facts.Resources())
	section := s.Section("requirements")
	section.Set("satisfied", result.Satisfied)
	if len(result.Errors) > 0 {
		section.Set("errors", result.Errors)
	}
	if len(result.Warnings) > 0 {
		section.Set("warnings", result.Warnings)
	}
	return nil
}

// cachedHost memoizes the first successful lookup of a HostSource so
// several providers in one build share it.
type cachedHost struct {
	source HostSource
	facts  *HostFacts
}

// HostFacts implements HostSource.
func (c *cachedHost) HostFacts(ctx context.Context) (*HostFacts, error) {
	if c.facts != nil {
		return c.facts, nil
	}
	facts, err := c.source.HostFacts(ctx)
	if err != nil {
		return nil, err
	}
	c.facts = facts
	return facts, nil
}

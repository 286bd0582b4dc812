package collect

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/version"
)

// RuntimeProvider reports the process runtime.
type RuntimeProvider struct {
	Debug bool
	// Now defaults to time.Now and decides tz_is_utc.
	Now func() time.Time
}

// Name implements Provider.
func (p *RuntimeProvider) Name() string { return "runtime" }

// Collect implements Provider.
func (p *RuntimeProvider) Collect(_ context.Context, s *report.Section) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	_, offset := now().Zone()

	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}

	s.Set("version", version.Version)
	s.Set("go_version", runtime.Version())
	s.Set("os", runtime.GOOS)
	s.Set("arch", runtime.GOARCH)
	s.Set("max_procs", runtime.GOMAXPROCS(0))
	s.Set("executable", exe)
	s.Set("tz_is_utc", offset == 0)
	s.Set("debug", p.Debug)
	return nil
}

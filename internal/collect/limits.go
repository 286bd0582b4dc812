package collect

import (
	"context"

	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/util"
)

// LimitsProvider reports configured size limits. Each limit yields
// "<name>_raw" with the byte count and "<name>" with a readable size.
type LimitsProvider struct {
	Limits []config.Limit
}

// Name implements Provider.
func (p *LimitsProvider) Name() string { return "limits" }

// Collect implements Provider.
func (p *LimitsProvider) Collect(_ context.Context, s *report.Section) error {
	for _, l := range p.Limits {
		if l.Err != nil {
			util.Warn("limit %s: %v", l.Name, l.Err)
			s.Set(l.Name, "invalid: "+l.Err.Error())
			continue
		}
		s.Set(l.Name+"_raw", l.Bytes)
		s.Set(l.Name, parse.FormatSize(l.Bytes))
	}
	return nil
}

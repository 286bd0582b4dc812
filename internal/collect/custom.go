package collect

import (
	"context"

	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/secrets"
	"github.com/griffithind/sysstatus/internal/util"
)

// CustomProvider appends user data under Key. Nothing is written when
// Data is empty.
type CustomProvider struct {
	Key  string
	Data *report.Section
}

// Name implements Provider.
func (p *CustomProvider) Name() string { return "custom" }

// Collect implements Provider.
func (p *CustomProvider) Collect(_ context.Context, s *report.Section) error {
	if p.Data == nil || p.Data.Len() == 0 {
		return nil
	}
	key := util.FirstNonEmpty(p.Key, config.DefaultCustomKey)
	s.Section(key).Merge(p.Data)
	return nil
}

// Providers returns the standard provider list for cfg. host may be nil,
// in which case the running system is used.
func Providers(cfg *config.Config, client Client, host HostSource) []Provider {
	if host == nil {
		host = &SystemHost{}
	}
	shared := &cachedHost{source: host}

	return []Provider{
		&RuntimeProvider{Debug: cfg.Debug},
		&LimitsProvider{Limits: cfg.ParsedLimits()},
		&ClientProvider{Client: client},
		&HostProvider{Source: shared},
		&RequirementsProvider{Requirements: cfg.Requirements, Source: shared},
		&CustomProvider{Key: cfg.CustomKey, Data: cfg.Custom},
	}
}

// NewFromConfig returns a builder running Providers(cfg, client, host).
func NewFromConfig(cfg *config.Config, client Client, host HostSource) *Builder {
	return NewBuilder(Providers(cfg, client, host)...).
		WithMasker(secrets.NewMasker(cfg.MaskKeys)).
		WithWalkOptions(cfg.WalkOptions()...)
}

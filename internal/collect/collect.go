// Package collect gathers environment facts into a report.
//
// A Builder runs a fixed list of providers in order, each writing its
// keys into the shared report. Providers receive everything they need at
// construction; none of them read request or process state on their own.
package collect

import (
	"context"
	"log/slog"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/secrets"
	"github.com/griffithind/sysstatus/internal/util"
)

// Provider contributes a group of facts to a report.
type Provider interface {
	// Name identifies the provider in logs and in "<name>_error" keys.
	Name() string
	// Collect writes the provider's keys into s.
	Collect(ctx context.Context, s *report.Section) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ID string
	Fn func(ctx context.Context, s *report.Section) error
}

// Name returns f.ID.
func (f ProviderFunc) Name() string { return f.ID }

// Collect calls f.Fn.
func (f ProviderFunc) Collect(ctx context.Context, s *report.Section) error {
	return f.Fn(ctx, s)
}

// Builder assembles a report from providers.
type Builder struct {
	providers []Provider
	masker    *secrets.Masker
	walkOpts  []report.WalkOption
	logger    *slog.Logger
}

// NewBuilder creates a builder running providers in the given order.
func NewBuilder(providers ...Provider) *Builder {
	return &Builder{
		providers: providers,
		logger:    util.Component("collect"),
	}
}

// WithLogger sets the logger used for provider failures.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMasker redacts secret values once all providers have run.
func (b *Builder) WithMasker(m *secrets.Masker) *Builder {
	b.masker = m
	return b
}

// WithWalkOptions sets the walk limits used when masking, matching the
// limits the report is later rendered with.
func (b *Builder) WithWalkOptions(opts ...report.WalkOption) *Builder {
	b.walkOpts = opts
	return b
}

// Add appends providers.
func (b *Builder) Add(providers ...Provider) *Builder {
	b.providers = append(b.providers, providers...)
	return b
}

// Providers returns the registered provider names in run order.
func (b *Builder) Providers() []string {
	names := make([]string, len(b.providers))
	for i, p := range b.providers {
		names[i] = p.Name()
	}
	return names
}

// Build runs every provider and returns the report.
//
// A failing provider does not stop the build: the failure is logged and
// recorded under "<name>_error". Cancellation of ctx is checked before
// each provider and returned as a COLLECT_CANCELED error. Secret values
// are redacted last, see WithMasker.
func (b *Builder) Build(ctx context.Context) (*report.Section, error) {
	s := report.NewSection()
	for _, p := range b.providers {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CategoryCollect, errors.CodeCollectCanceled, "report collection canceled").
				WithContext("provider", p.Name())
		}

		if err := p.Collect(ctx, s); err != nil {
			b.logger.Warn("provider failed", "provider", p.Name(), "error", err)
			s.Set(p.Name()+"_error", err.Error())
		}
	}

	if !b.masker.Enabled() {
		return s, nil
	}
	masked, n, err := b.masker.MaskSection(s, b.walkOpts...)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		b.logger.Debug("masked secret values", "count", n)
	}
	return masked, nil
}

// providerError wraps a provider failure.
func providerError(name string, err error) error {
	return errors.Wrapf(err, errors.CategoryCollect, errors.CodeCollectProvider, "%s provider failed", name).
		WithContext("provider", name)
}

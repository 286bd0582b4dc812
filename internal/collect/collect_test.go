package collect

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/secrets"
)

type fakeHost struct {
	facts *HostFacts
	err   error
	calls int
}

func (f *fakeHost) HostFacts(context.Context) (*HostFacts, error) {
	f.calls++
	return f.facts, f.err
}

func sampleFacts() *HostFacts {
	return &HostFacts{
		Hostname:        "web-1",
		OS:              "linux",
		Platform:        "debian",
		PlatformVersion: "12",
		KernelVersion:   "6.1.0",
		Uptime:          90 * time.Minute,
		CPUs:            4,
		MemoryTotal:     8 << 30,
		MemoryAvailable: 2 << 30,
		DiskPath:        "/",
		DiskTotal:       100 << 30,
		DiskFree:        40 << 30,
	}
}

func setter(name, key string, value any) Provider {
	return ProviderFunc{ID: name, Fn: func(_ context.Context, s *report.Section) error {
		s.Set(key, value)
		return nil
	}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestBuilderRunsProvidersInOrder(t *testing.T) {
	b := NewBuilder(setter("a", "first", 1), setter("b", "second", 2)).
		Add(setter("c", "third", 3))

	assert.Equal(t, []string{"a", "b", "c"}, b.Providers())

	s, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, s.Keys())
}

func TestBuilderRecordsProviderErrors(t *testing.T) {
	var logs bytes.Buffer
	failing := ProviderFunc{ID: "broken", Fn: func(context.Context, *report.Section) error {
		return fmt.Errorf("boom")
	}}

	s, err := NewBuilder(failing, setter("ok", "after", true)).
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))).
		Build(context.Background())
	require.NoError(t, err)

	v, ok := s.Get("broken_error")
	require.True(t, ok)
	assert.Equal(t, "boom", v)

	_, ok = s.Get("after")
	assert.True(t, ok, "later providers still run")
	assert.Contains(t, logs.String(), "provider=broken")
}

func TestBuilderMasksSecrets(t *testing.T) {
	s, err := NewBuilder(setter("a", "db_password", "hunter2"), setter("b", "host", "web")).
		WithMasker(secrets.NewMasker(nil)).
		WithLogger(discardLogger()).
		Build(context.Background())
	require.NoError(t, err)

	pw, _ := s.Get("db_password")
	assert.Equal(t, secrets.Mask, pw)
	host, _ := s.Get("host")
	assert.Equal(t, "web", host)
}

func TestBuilderMasksWithWalkOptions(t *testing.T) {
	deep := report.NewSection()
	cur := deep
	for i := 0; i < report.DefaultMaxDepth+4; i++ {
		cur = cur.Section("level")
	}
	cur.Set("api_token", "abc")

	nest := ProviderFunc{ID: "deep", Fn: func(_ context.Context, s *report.Section) error {
		s.Set("root", deep)
		return nil
	}}

	_, err := NewBuilder(nest).WithMasker(secrets.NewMasker(nil)).
		WithLogger(discardLogger()).
		Build(context.Background())
	assert.True(t, errors.Is(err, errors.CodeReportTooDeep), "default limit applies")

	s, err := NewBuilder(nest).WithMasker(secrets.NewMasker(nil)).
		WithWalkOptions(report.WithMaxDepth(report.DefaultMaxDepth * 2)).
		WithLogger(discardLogger()).
		Build(context.Background())
	require.NoError(t, err)

	cur = s.Section("root")
	for i := 0; i < report.DefaultMaxDepth+4; i++ {
		cur = cur.Section("level")
	}
	token, _ := cur.Get("api_token")
	assert.Equal(t, secrets.Mask, token)
}

func TestBuilderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancelling := ProviderFunc{ID: "stop", Fn: func(context.Context, *report.Section) error {
		cancel()
		return nil
	}}

	_, err := NewBuilder(cancelling, setter("never", "x", 1)).Build(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCollectCanceled))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRuntimeProvider(t *testing.T) {
	tests := []struct {
		name string
		loc  *time.Location
		utc  bool
	}{
		{"utc", time.UTC, true},
		{"offset", time.FixedZone("CET", 3600), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &RuntimeProvider{Debug: true, Now: func() time.Time {
				return time.Date(2024, 1, 1, 0, 0, 0, 0, tt.loc)
			}}
			s := report.NewSection()
			require.NoError(t, p.Collect(context.Background(), s))

			utc, _ := s.Get("tz_is_utc")
			assert.Equal(t, tt.utc, utc)
			debug, _ := s.Get("debug")
			assert.Equal(t, true, debug)
			assert.Contains(t, s.Keys(), "go_version")
		})
	}
}

func TestHostProvider(t *testing.T) {
	s := report.NewSection()
	p := &HostProvider{Source: &fakeHost{facts: sampleFacts()}}
	require.NoError(t, p.Collect(context.Background(), s))

	server := s.Section("server")
	hostname, _ := server.Get("hostname")
	assert.Equal(t, "web-1", hostname)
	uptime, _ := server.Get("uptime")
	assert.Equal(t, "1h30m0s", uptime)
	mem, _ := server.Get("memory_total")
	assert.Equal(t, "8.0 GiB", mem)
	cpus, _ := server.Get("cpus")
	assert.Equal(t, 4, cpus)
}

func TestHostProviderError(t *testing.T) {
	p := &HostProvider{Source: &fakeHost{err: fmt.Errorf("no host")}}
	err := p.Collect(context.Background(), report.NewSection())
	assert.True(t, errors.Is(err, errors.CodeCollectProvider))
}

func TestRequirementsProvider(t *testing.T) {
	t.Run("none configured", func(t *testing.T) {
		s := report.NewSection()
		host := &fakeHost{facts: sampleFacts()}
		require.NoError(t, (&RequirementsProvider{Source: host}).Collect(context.Background(), s))
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, 0, host.calls)
	})

	t.Run("unmet", func(t *testing.T) {
		s := report.NewSection()
		p := &RequirementsProvider{
			Requirements: &config.Requirements{CPUs: 8, Memory: "4G"},
			Source:       &fakeHost{facts: sampleFacts()},
		}
		require.NoError(t, p.Collect(context.Background(), s))

		section := s.Section("requirements")
		satisfied, _ := section.Get("satisfied")
		assert.Equal(t, false, satisfied)
		errs := section.Section("errors")
		assert.Equal(t, 1, errs.Len())
		_, hasWarnings := section.Get("warnings")
		assert.False(t, hasWarnings)
	})
}

func TestCachedHost(t *testing.T) {
	host := &fakeHost{facts: sampleFacts()}
	cached := &cachedHost{source: host}

	for i := 0; i < 3; i++ {
		facts, err := cached.HostFacts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "web-1", facts.Hostname)
	}
	assert.Equal(t, 1, host.calls)
}

func TestLimitsProvider(t *testing.T) {
	cfg, err := config.Parse([]byte(`{"limits": {"memory_limit": "256M", "unlimited": "-1", "broken": "xM"}}`))
	require.NoError(t, err)

	s := report.NewSection()
	require.NoError(t, (&LimitsProvider{Limits: cfg.ParsedLimits()}).Collect(context.Background(), s))

	assert.Equal(t, []string{"memory_limit_raw", "memory_limit", "unlimited_raw", "unlimited", "broken"}, s.Keys())

	raw, _ := s.Get("memory_limit_raw")
	assert.Equal(t, int64(256<<20), raw)
	human, _ := s.Get("memory_limit")
	assert.Equal(t, "256 MiB", human)
	unlimited, _ := s.Get("unlimited")
	assert.Equal(t, "-1 B", unlimited)
	broken, _ := s.Get("broken")
	assert.Contains(t, broken, "invalid: ")
}

func TestCustomProvider(t *testing.T) {
	data := report.NewSection().Set("owner", "ops")

	s := report.NewSection()
	require.NoError(t, (&CustomProvider{Data: data}).Collect(context.Background(), s))
	owner, _ := s.Section("custom").Get("owner")
	assert.Equal(t, "ops", owner)

	s = report.NewSection()
	require.NoError(t, (&CustomProvider{Key: "site", Data: data}).Collect(context.Background(), s))
	assert.Equal(t, []string{"site"}, s.Keys())

	s = report.NewSection()
	require.NoError(t, (&CustomProvider{Key: "site"}).Collect(context.Background(), s))
	assert.Equal(t, 0, s.Len())
}

func TestNewFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`{
		"limits": {"post_max_size": "8M"},
		"requirements": {"cpus": 2},
		"custom": {"owner": "ops", "smtp_password": "hunter2"}
	}`))
	require.NoError(t, err)

	host := &fakeHost{facts: sampleFacts()}
	b := NewFromConfig(cfg, Client{RemoteAddr: "127.0.0.1:5555"}, host).WithLogger(discardLogger())
	assert.Equal(t, []string{"runtime", "limits", "client", "server", "requirements", "custom"}, b.Providers())

	s, err := b.Build(context.Background())
	require.NoError(t, err)

	for _, key := range []string{"go_version", "post_max_size_raw", "localhost", "browser", "server", "requirements", "custom"} {
		_, ok := s.Get(key)
		assert.True(t, ok, key)
	}
	local, _ := s.Get("localhost")
	assert.Equal(t, "true", local)
	assert.Equal(t, 1, host.calls, "host facts are looked up once per build")
	pw, _ := s.Section("custom").Get("smtp_password")
	assert.Equal(t, secrets.Mask, pw)

	_, err = report.Walk(s)
	assert.NoError(t, err)
}

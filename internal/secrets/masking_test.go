package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffithind/sysstatus/internal/report"
)

func TestIsSecret(t *testing.T) {
	m := NewMasker(nil)

	tests := []struct {
		key    string
		secret bool
	}{
		{"db_password", true},
		{"DB_PASSWORD", true},
		{"github_token", true},
		{"Authorization", true},
		{"stripe_api_key", true},
		{"hostname", false},
		{"theme_author", false},
		{"memory_limit", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.secret, m.IsSecret(tt.key))
		})
	}
}

func TestNewMasker(t *testing.T) {
	assert.True(t, NewMasker(nil).Enabled())
	assert.False(t, NewMasker([]string{}).Enabled())
	assert.False(t, NewMasker([]string{" ", ""}).Enabled())

	var nilMasker *Masker
	assert.False(t, nilMasker.IsSecret("password"))

	custom := NewMasker([]string{" License "})
	assert.True(t, custom.IsSecret("license_key"))
	assert.False(t, custom.IsSecret("password"))
}

func TestMaskSection(t *testing.T) {
	s := report.NewSection().
		Set("site", "example.org").
		Set("db_password", "hunter2")
	creds := s.Section("smtp_secret")
	creds.Set("user", "mailer")
	creds.Section("nested").Set("pin", 1234)
	s.Set("after", "visible")
	s.Section("api").Set("token", "abc").Set("endpoint", "https://x")

	masked, n, err := NewMasker(nil).MaskSection(s)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	rows, err := report.Walk(masked)
	require.NoError(t, err)

	values := map[string]string{}
	for _, r := range rows {
		if r.Kind == report.KindRow {
			values[r.Key] = r.Text()
		}
	}
	assert.Equal(t, "example.org", values["site"])
	assert.Equal(t, Mask, values["db_password"])
	assert.Equal(t, Mask, values["user"])
	assert.Equal(t, Mask, values["pin"])
	assert.Equal(t, "visible", values["after"])
	assert.Equal(t, Mask, values["token"])
	assert.Equal(t, "https://x", values["endpoint"])

	original, _ := s.Get("db_password")
	assert.Equal(t, "hunter2", original, "input is not modified")
}

func TestMaskSectionDisabled(t *testing.T) {
	s := report.NewSection().Set("password", "x")

	masked, n, err := NewMasker([]string{}).MaskSection(s)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	v, _ := masked.Get("password")
	assert.Equal(t, "x", v)
}

func TestMaskSectionCycle(t *testing.T) {
	s := report.NewSection()
	s.Set("self", s)

	_, _, err := NewMasker(nil).MaskSection(s)
	assert.Error(t, err)
}

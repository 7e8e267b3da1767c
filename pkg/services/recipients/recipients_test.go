package recipients

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	r := Defaults()
	assert.Equal(t, []string{"erin@clocksynk.com", "jared@clocksynk.com", "bill@clocksynk.com"}, r.Recipients(domain.ReportKindWeekly))
	assert.Equal(t, []string{"erin@clocksynk.com", "board@clocksynk.com"}, r.Recipients(domain.ReportKindMonthly))

	list := r.Recipients(domain.ReportKindWeekly)
	list[0] = "mallory@example.com"
	assert.Equal(t, "erin@clocksynk.com", r.Recipients(domain.ReportKindWeekly)[0])
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		weekly  []string
		monthly []string
		wantErr bool
	}{
		{
			name:    "overrides one kind",
			content: "[monthly]\nto = erin@clocksynk.com, investors@clocksynk.com\n",
			weekly:  []string{"erin@clocksynk.com", "jared@clocksynk.com", "bill@clocksynk.com"},
			monthly: []string{"erin@clocksynk.com", "investors@clocksynk.com"},
		},
		{
			name:    "empty list disables sending",
			content: "[weekly]\nto =\n",
			weekly:  nil,
			monthly: []string{"erin@clocksynk.com", "board@clocksynk.com"},
		},
		{
			name:    "unknown kind",
			content: "[daily]\nto = a@b.c\n",
			wantErr: true,
		},
		{
			name:    "bad address",
			content: "[weekly]\nto = erin\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Load(writeFile(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weekly, r.Recipients(domain.ReportKindWeekly))
			assert.Equal(t, tt.monthly, r.Recipients(domain.ReportKindMonthly))
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

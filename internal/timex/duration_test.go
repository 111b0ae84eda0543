package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string", `"8h"`, 8 * time.Hour, false},
		{"minutes as number", `90`, 90 * time.Minute, false},
		{"null", `null`, 0, false},
		{"garbage", `"soon"`, 0, true},
		{"bool", `true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		Admin    Duration `yaml:"admin"`
		Customer Duration `yaml:"customer"`
	}
	err := yaml.Unmarshal([]byte("admin: 8h\ncustomer: 1440\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, cfg.Admin.Duration)
	assert.Equal(t, 24*time.Hour, cfg.Customer.Duration)
}

package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  Config
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: Config{
				AccountsDBPath: "users.db",
				ServicesDBPath: "services.db",
				AuthCachePath:  ".auth",
				LogLevel:       "info",
				LogFormat:      "text",
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"ACCOUNTS_DB_PATH": "/data/accounts.db",
				"SERVICES_DB_PATH": "/data/catalog.db",
				"AUTH_CACHE_PATH":  "/data/.session",
				"LOG_LEVEL":        "debug",
				"LOG_FORMAT":       "json",
			},
			flags: []string{},
			want: Config{
				AccountsDBPath: "/data/accounts.db",
				ServicesDBPath: "/data/catalog.db",
				AuthCachePath:  "/data/.session",
				LogLevel:       "debug",
				LogFormat:      "json",
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "flag-users.db",
				"-s", "flag-services.db",
				"-c", "flag.auth",
				"-l", "warn",
			},
			want: Config{
				AccountsDBPath: "flag-users.db",
				ServicesDBPath: "flag-services.db",
				AuthCachePath:  "flag.auth",
				LogLevel:       "warn",
				LogFormat:      "text",
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"ACCOUNTS_DB_PATH": "/env/users.db",
			},
			flags: []string{
				"-a", "flag-users.db",
			},
			want: Config{
				AccountsDBPath: "/env/users.db",
				ServicesDBPath: "services.db",
				AuthCachePath:  ".auth",
				LogLevel:       "info",
				LogFormat:      "text",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = append([]string{"repairdesk"}, tt.flags...)

			cfg, err := NewConfig()
			require.NoError(t, err)

			assert.Equal(t, tt.want, cfg)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		environ map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{
				RunAddress:    defaultRunAddress,
				MigrationsDir: defaultMigrationsDir,
				JWTUserSecret: defaultJWTSecret,
				SeedData:      true,
				AuditInterval: defaultAuditInterval,
			},
		},
		{
			name: "flags",
			args: []string{"-a", ":9000", "-d", "postgres://flag", "-s=false", "-i", "5s", "-j", "flag-secret"},
			want: Config{
				RunAddress:    ":9000",
				DatabaseDSN:   "postgres://flag",
				MigrationsDir: defaultMigrationsDir,
				JWTUserSecret: "flag-secret",
				SeedData:      false,
				AuditInterval: 5 * time.Second,
			},
		},
		{
			name: "env overrides flags",
			args: []string{"-a", ":9000", "-s=true"},
			environ: map[string]string{
				"RUN_ADDRESS":    ":3001",
				"DATABASE_URI":   "postgres://env",
				"JWT_SECRET":     "env-secret",
				"SEED_DATA":      "false",
				"AUDIT_INTERVAL": "0s",
			},
			want: Config{
				RunAddress:    ":3001",
				DatabaseDSN:   "postgres://env",
				MigrationsDir: defaultMigrationsDir,
				JWTUserSecret: "env-secret",
				SeedData:      false,
				AuditInterval: 0,
			},
		},
		{
			name:    "database with default secret",
			args:    []string{"-d", "postgres://flag"},
			wantErr: true,
		},
		{
			name:    "database with default secret from env",
			environ: map[string]string{"DATABASE_URI": "postgres://env", "JWT_SECRET": defaultJWTSecret},
			wantErr: true,
		},
		{
			name:    "negative interval",
			args:    []string{"-i", "-1s"},
			wantErr: true,
		},
		{
			name:    "bad env value",
			environ: map[string]string{"SEED_DATA": "maybe"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-x"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			environ := tc.environ
			if environ == nil {
				environ = map[string]string{}
			}
			conf, err := load(tc.args, environ)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, *conf)
		})
	}
}

func TestUsesDefaultJWTSecret(t *testing.T) {
	conf, err := load(nil, map[string]string{})
	require.NoError(t, err)
	assert.True(t, conf.UsesDefaultJWTSecret())

	conf, err = load([]string{"-j", "custom"}, map[string]string{})
	require.NoError(t, err)
	assert.False(t, conf.UsesDefaultJWTSecret())
}

func TestWithDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=file-secret\nRUN_ADDRESS=:4000\n"), 0o600))

	environ, err := withDotEnv(path, map[string]string{"RUN_ADDRESS": ":5000"})
	require.NoError(t, err)
	assert.Equal(t, "file-secret", environ["JWT_SECRET"])
	assert.Equal(t, ":5000", environ["RUN_ADDRESS"])

	conf, err := load(nil, environ)
	require.NoError(t, err)
	assert.Equal(t, "file-secret", conf.JWTUserSecret)

	environ, err = withDotEnv(filepath.Join(dir, "missing.env"), map[string]string{"A": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1"}, environ)
}

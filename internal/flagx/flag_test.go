package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-g", "-d", "-o"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "server flags picked out of a mixed command line",
			args:    []string{"-c", "toursite.json", "-a", ":8080", "-u", "http://x", "-d", "sqlite"},
			allowed: serverFlags,
			want:    []string{"-a", ":8080", "-d", "sqlite"},
		},
		{
			name:    "equals form",
			args:    []string{"-o=https://example.com", "-lang=ru"},
			allowed: serverFlags,
			want:    []string{"-o=https://example.com"},
		},
		{
			name:    "value starting with dash is not consumed",
			args:    []string{"-g", "-a", ":8080"},
			allowed: serverFlags,
			want:    []string{"-g", "-a", ":8080"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-d"},
			allowed: serverFlags,
			want:    []string{"-d"},
		},
		{
			name:    "equals value may start with dashes",
			args:    []string{"-config=--odd.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--odd.json"},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-l", "en", "-l", "ru"},
			allowed: []string{"-l"},
			want:    []string{"-l", "en", "-l", "ru"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"positional", "-x", "1"},
			allowed: serverFlags,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"toursite", "-c", "/etc/toursite.json"}, "/etc/toursite.json"},
		{"long with equals", []string{"toursite", "-config=admin.json", "-l", "id"}, "admin.json"},
		{"last wins", []string{"toursite", "-c", "a.json", "-config", "b.json"}, "b.json"},
		{"absent", []string{"toursite", "-a", ":8080"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigPath())
		})
	}
}

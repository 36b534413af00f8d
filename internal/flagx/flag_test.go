package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-w", "14", "-a", ":8080"},
			allowed: []string{"-w"},
			want:    []string{"-w", "14"},
		},
		{
			name:    "equals form",
			args:    []string{"-z=UTC", "-a", ":8080"},
			allowed: []string{"-z"},
			want:    []string{"-z=UTC"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "order and repetition preserved",
			args:    []string{"-r", "09:00", "-w", "7", "-r", "19:22"},
			allowed: []string{"-r", "-w"},
			want:    []string{"-r", "09:00", "-w", "7", "-r", "19:22"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"bin", "-c", "/etc/doclife.json"}, want: "/etc/doclife.json"},
		{name: "long", args: []string{"bin", "-config", "/etc/doclife.json"}, want: "/etc/doclife.json"},
		{name: "absent", args: []string{"bin", "-w", "7"}, want: ""},
		{name: "last wins", args: []string{"bin", "-c", "a.json", "-config", "b.json"}, want: "b.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigFilePath())
		})
	}
}

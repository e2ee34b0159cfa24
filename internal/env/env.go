package env

import (
	"os"
	"path/filepath"
	"runtime"
)

type Env interface {
	Get(key string) string
	Env() []string
}

type osEnv struct{}

// Get implements Env.
func (o *osEnv) Get(key string) string {
	return os.Getenv(key)
}

// Env implements Env.
func (o *osEnv) Env() []string {
	env := os.Environ()
	if len(env) == 0 {
		return nil
	}
	return env
}

func New() Env {
	return &osEnv{}
}

type mapEnv struct {
	m map[string]string
}

// Get implements Env.
func (m *mapEnv) Get(key string) string {
	if value, ok := m.m[key]; ok {
		return value
	}
	return ""
}

// Env implements Env.
func (m *mapEnv) Env() []string {
	if len(m.m) == 0 {
		return nil
	}
	env := make([]string, 0, len(m.m))
	for k, v := range m.m {
		env = append(env, k+"="+v)
	}
	return env
}

func NewFromMap(m map[string]string) Env {
	if m == nil {
		m = make(map[string]string)
	}
	return &mapEnv{m: m}
}

// ConfigHome returns the base directory for user configuration files,
// honoring XDG_CONFIG_HOME.
func ConfigHome(e Env) string {
	if dir := e.Get("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		if dir := e.Get("LOCALAPPDATA"); dir != "" {
			return dir
		}
	}
	return filepath.Join(e.Get("HOME"), ".config")
}

// DataHome returns the base directory for user data files, honoring
// XDG_DATA_HOME.
func DataHome(e Env) string {
	if dir := e.Get("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		if dir := e.Get("LOCALAPPDATA"); dir != "" {
			return dir
		}
	}
	return filepath.Join(e.Get("HOME"), ".local", "share")
}

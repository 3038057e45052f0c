package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // e.g. "DESIGNABLE_"
	mapping map[string]string // env var -> config path
	ignore  map[string]bool
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with explicit mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		ignore:  map[string]bool{prefix + "CONFIG": true},
		environ: os.Environ,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":       "log.level",
		prefix + "LOG_FORMAT":      "log.format",
		prefix + "LOG_FILE":        "log.file",
		prefix + "SCREEN":          "designer.screen",
		prefix + "ROOT_COMPONENT":  "designer.root_component",
		prefix + "DOCUMENT":        "document.path",
		prefix + "METRICS_ENABLED": "metrics.enabled",
		prefix + "METRICS_ADDR":    "metrics.addr",
	}
}

// AddMapping maps envVar to a dotted config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// Load reads mapped variables, then every other prefixed variable.
// DESIGNABLE_DOCUMENT_WATCH becomes document.watch. Empty values count as
// set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || l.ignore[name] {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		SetByPath(config, path, ParseValue(value))
	}
	return config, nil
}

// envToPath converts DESIGNABLE_DOCUMENT_WATCH to document.watch and
// DESIGNABLE_DESIGNER_DRAG_THRESHOLD to designer.drag_threshold.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// ParseValue interprets an environment string as a bool, integer, float,
// TOML array or inline table, or plain string.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var doc struct{ V any }
		if err := toml.Unmarshal([]byte("V = "+s), &doc); err == nil {
			return doc.V
		}
	}
	return s
}

// SetByPath sets a value in a nested map using a dot-separated path.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

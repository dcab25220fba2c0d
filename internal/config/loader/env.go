package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by EnvLoader.
const EnvPrefix = "KEYNOTE_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYNOTE_")
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for the default KEYNOTE_ variables.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.LookupEnv,
	}
}

// defaultEnvMapping returns the variables that override config keys.
// Keys contain underscores, so names are mapped explicitly rather than
// split on "_".
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":             "log.level",
		prefix + "HISTORY_MAX_SIZE":      "history.max_size",
		prefix + "SEARCH_CASE_SENSITIVE": "search.case_sensitive",
		prefix + "SEARCH_WHOLE_WORD":     "search.whole_word",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values count as set. It returns nil if no variable is set.
func (l *EnvLoader) Load() (map[string]any, error) {
	var config map[string]any
	for env, path := range l.mapping {
		val, ok := l.lookup(env)
		if !ok {
			continue
		}
		if config == nil {
			config = make(map[string]any)
		}
		SetByPath(config, path, parseValue(val))
	}
	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

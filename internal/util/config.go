package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPrompt        = "lispy> "
	DefaultHistoryDriver = "sqlite3"
	DefaultLogLevel      = "error"
	ConfigFileName       = "lispy.toml"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`
	LispyHome string `toml:"-"`

	Prompt string `toml:"prompt"`
	// line editor history, one expression per line
	HistoryFile string `toml:"history_file"`
	// transcript database; disabled while HistoryDSN is empty
	HistoryDriver string `toml:"history_driver"`
	HistoryDSN    string `toml:"history_dsn"`

	DebugAST     bool   `toml:"debug_ast"`
	DebugASTFile string `toml:"debug_ast_file"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func DefaultConfiguration() Configuration {
	cfg := Configuration{
		Prompt:        DefaultPrompt,
		HistoryDriver: DefaultHistoryDriver,
		LogLevel:      DefaultLogLevel,
		LispyHome:     os.Getenv("LISPY_HOME"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".lispy_history")
	}
	return cfg
}

// DefaultConfigPath is $LISPY_HOME/lispy.toml, or empty when LISPY_HOME is unset.
func (c Configuration) DefaultConfigPath() string {
	if c.LispyHome == "" {
		return ""
	}
	return filepath.Join(c.LispyHome, ConfigFileName)
}

// LoadConfigFile overlays the settings found in a TOML file onto cfg. Unknown
// keys are rejected so that typos do not go unnoticed.
func LoadConfigFile(path string, cfg *Configuration) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in config file '%s': %s", path, strings.Join(keys, ", "))
	}
	return nil
}

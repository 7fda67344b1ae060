// Package am holds the process-wide configuration for derived-attributes,
// loaded through Viper from a config file, environment variables, and
// defaults.
package am

// Config represents the core derived-attributes configuration
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
}

// EngineConfig configures the derivation engine
type EngineConfig struct {
	// PrivatePrefix marks intermediate attributes excluded from output.
	PrivatePrefix string `mapstructure:"private_prefix"`
	// DateLayouts are tried in order when the date-window verbs parse
	// date strings.
	DateLayouts []string `mapstructure:"date_layouts"`
}

// InputConfig configures default input locations for the CLI
type InputConfig struct {
	// Table is the default sentence/trigger table path (.csv or .yaml).
	Table string `mapstructure:"table"`
	// Source is the default source document path (JSON).
	Source string `mapstructure:"source"`
}

// OutputConfig configures CLI output
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `mapstructure:"format"`
}

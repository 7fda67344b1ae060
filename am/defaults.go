package am

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Engine defaults
	v.SetDefault("engine.private_prefix", "_")
	v.SetDefault("engine.date_layouts", []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	})

	// Input defaults
	v.SetDefault("input.table", "sentences.csv")
	v.SetDefault("input.source", "source.json")

	// Output defaults
	v.SetDefault("output.format", "table")
}

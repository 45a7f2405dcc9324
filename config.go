package pivot

import (
	"github.com/akmonengine/pivot/logger"
	"github.com/akmonengine/pivot/record"
)

const DEFAULT_WORKERS = 1

// Config holds the engine settings. Field tags follow the keys of the
// command line configuration file.
type Config struct {
	Workers              int            `mapstructure:"workers"`
	PseudoInverseEpsilon float64        `mapstructure:"pseudoinverse_epsilon"`
	Log                  logger.Options `mapstructure:"log"`
}

func DefaultConfig() Config {
	return Config{
		Workers:              DEFAULT_WORKERS,
		PseudoInverseEpsilon: record.PSEUDOINVERSE_EPSILON,
		Log: logger.Options{
			Level:  "info",
			Format: logger.FormatText,
		},
	}
}

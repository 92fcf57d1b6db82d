package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" default:"info"`
	// Format is json or console.
	Format string `mapstructure:"format" default:"json"`
	// File, when set, also writes JSON logs to a rotating file.
	File string `mapstructure:"file" default:""`
	// MaxSizeMB is the size at which File is rotated.
	MaxSizeMB int `mapstructure:"max_size_mb" default:"100"`
	// MaxBackups is how many rotated files are kept.
	MaxBackups int `mapstructure:"max_backups" default:"3"`
}

package reconcile

// Config holds the sync settings loaded from the environment.
type Config struct {
	// RootTitle names the destination folder the engine manages.
	RootTitle string `mapstructure:"root_title" default:"Synced bookmarks"`
	// Concurrency bounds parallel sibling processing.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// IncludeUnsorted syncs unsorted items into their own folder.
	IncludeUnsorted bool `mapstructure:"include_unsorted" default:"true"`
	// UnsortedTitle names the unsorted folder.
	UnsortedTitle string `mapstructure:"unsorted_title" default:"Unsorted"`
	// SourcePath is the YAML export read by the file source.
	SourcePath string `mapstructure:"source_path" default:"bookmarks.yaml"`
}

// Options converts the config into engine options.
func (c Config) Options() Options {
	return Options{
		Concurrency:     c.Concurrency,
		IncludeUnsorted: c.IncludeUnsorted,
		UnsortedTitle:   c.UnsortedTitle,
	}
}

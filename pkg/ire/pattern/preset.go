package pattern

// PresetFile is the structure of a YAML preset file: a library of saved
// patterns the interactive session can cycle through instead of retyping
// them.
//
// Example YAML file:
//
//	version: 1
//	presets:
//	  - id: apache_access
//	    description: Apache combined log line
//	    regex: '^(?P<host>\S+) \S+ \S+ \[(?P<time>[^\]]+)\] "(?P<request>[^"]*)"'
//	  - id: kv_pairs
//	    regex: '(?P<key>\w+)=(?P<value>\S+)'
type PresetFile struct {
	// Version is the preset file format version. Currently only version 1
	// is supported.
	Version int `yaml:"version"`

	// Presets is the list of saved patterns.
	Presets []Preset `yaml:"presets"`
}

// Preset is a single saved pattern.
// The regex is validated for length limits at load time but compiled only
// when selected, so a preset with a syntax error surfaces through the same
// inline diagnostics as a hand-typed pattern.
type Preset struct {
	// ID is a unique identifier for this preset (e.g., "apache_access").
	ID string `yaml:"id"`

	// Description is optional human-readable text shown when cycling.
	Description string `yaml:"description,omitempty"`

	// Regex is the pattern text.
	Regex string `yaml:"regex"`
}

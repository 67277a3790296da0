package types

// Rule maps a filename glob to a category directory name. Rules come from
// the configuration file and are consulted before the built-in extension
// table.
type Rule struct {
	Match    string `yaml:"match"`    // Glob pattern to match filenames (e.g., "report_*.pdf").
	Category string `yaml:"category"` // Category directory the matched files move into (e.g., "Reports").
}

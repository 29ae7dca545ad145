package output

// ResolveData is the JSON output of the resolve command.
type ResolveData struct {
	Root    string   `json:"root"`
	Chain   []string `json:"chain"`
	Config  any      `json:"config"`
	Written string   `json:"written,omitempty"`
}

// ExplainData is the JSON output of the explain command.
type ExplainData struct {
	Rule     string `json:"rule"`
	Root     string `json:"root"`
	Found    bool   `json:"found"`
	Severity string `json:"severity,omitempty"`
	Options  []any  `json:"options,omitempty"`
	Source   string `json:"source,omitempty"`
}

// PresetItem describes one bundled preset.
type PresetItem struct {
	Name    string   `json:"name"`
	Package string   `json:"package"`
	Extends []string `json:"extends"`
	Rules   int      `json:"rules"`
}

// CheckData is the JSON output of the check command.
type CheckData struct {
	Results []CheckResult `json:"results"`
	Success bool          `json:"success"`
}

// CheckResult holds the outcome of resolving one reference.
type CheckResult struct {
	Ref     string `json:"ref"`
	Rules   int    `json:"rules"`
	Enabled int    `json:"enabled"`
	Presets int    `json:"presets"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// TagData is the JSON output of the tag command.
type TagData struct {
	Tag       string   `json:"tag"`
	Message   string   `json:"message"`
	Commands  []string `json:"commands"`
	Completed []string `json:"completed"`
	DryRun    bool     `json:"dry_run"`
}

package cmd

type Location struct {
	Line      int `json:"line" yaml:"line"`
	Column    int `json:"column" yaml:"column"`
	LineEnd   int `json:"lineEnd,omitempty" yaml:"lineEnd,omitempty"`
	ColumnEnd int `json:"columnEnd,omitempty" yaml:"columnEnd,omitempty"`
}

type ValidationError struct {
	Message   string     `json:"message" yaml:"message"`
	Rule      string     `json:"rule,omitempty" yaml:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty" yaml:"locations,omitempty"`
	Section   string     `json:"section,omitempty" yaml:"section,omitempty"`
	Details   string     `json:"details,omitempty" yaml:"details,omitempty"`
}

type ValidationResult struct {
	File   string            `json:"file" yaml:"file"`
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []ValidationError `json:"errors" yaml:"errors"`

	// source is kept for text rendering.
	source string
}

type RuleInfo struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

package models

// SimulateRequest selects what to run. Either a list of years, or a date
// window (YYYY-MM-DD, at most the configured number of days). Empty years
// and window means "all configured years".
type SimulateRequest struct {
	Years []int  `json:"years,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`

	// DisableImports overrides the scenario's backup-import setting for
	// this run only (nil keeps the configured value).
	DisableImports *bool `json:"disable_imports,omitempty"`
}

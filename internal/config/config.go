package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario configuration shape (YAML).
type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`

	// Optional: load network parameters from a separate YAML
	// (e.g. example/networks/*.yaml). If both NetworkFile and Network are
	// provided, Network overrides NetworkFile.
	NetworkFile string        `yaml:"network_file"`
	Network     NetworkConfig `yaml:"network"`

	Solver SolverConfig `yaml:"solver"`
	Paths  PathsConfig  `yaml:"paths"`
	Charts ChartsConfig `yaml:"charts"`

	// WindowMaxDays caps date-range simulations (simulate --start/--end and
	// the API window form). Full-year runs are not capped.
	WindowMaxDays int `yaml:"window_max_days"`
}

type ScenarioConfig struct {
	Name  string   `yaml:"name"`
	Years []int    `yaml:"years"`
	Buses []string `yaml:"buses"`
}

type NetworkConfig struct {
	VNomKV float64 `yaml:"v_nom_kv"`

	// Backup import generators attached to every bus. They make every
	// snapshot feasible at a high marginal cost. On by default; disabling
	// them lets a shortage surface as infeasibility.
	DisableImports   bool    `yaml:"disable_imports"`
	ImportCapacityMW float64 `yaml:"import_capacity_mw"`
	ImportCostPerMWh float64 `yaml:"import_cost_per_mwh"`
}

type SolverConfig struct {
	// Name selects the LP backend: "simplex" (pure Go) or "highs".
	Name      string  `yaml:"name"`
	Tolerance float64 `yaml:"tolerance"`
}

type PathsConfig struct {
	Demand          string `yaml:"demand"`
	Plants          string `yaml:"plants"`
	Lines           string `yaml:"lines"`
	FuelCosts       string `yaml:"fuel_costs"`
	FuelConstraints string `yaml:"fuel_constraints"`
	ResultsDir      string `yaml:"results_dir"`
}

type ChartsConfig struct {
	WidthPX  int `yaml:"width_px"`
	HeightPX int `yaml:"height_px"`
	// Colors maps fuel name to a hex color ("#FDB813"). Fuels without an
	// entry render gray.
	Colors map[string]string `yaml:"colors"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not default or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If network_file is set, load it and merge in any explicit overrides
	// from c.Network.
	if c.NetworkFile != "" {
		networkPath := c.NetworkFile
		if !filepath.IsAbs(networkPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, but fall back to the provided path (relative to cwd)
			// if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), networkPath)
			if _, err := os.Stat(cand); err == nil {
				networkPath = cand
			}
		}
		loaded, err := loadNetworkFile(networkPath)
		if err != nil {
			return nil, err
		}
		c.Network = MergeNetwork(loaded, c.Network)
	}
	return &c, nil
}

// ApplyDefaults fills in the zero-valued knobs. Load calls it; callers that
// assemble a Config in code (the API, tests) use it directly.
func (c *Config) ApplyDefaults() {
	if c.Network.VNomKV == 0 {
		c.Network.VNomKV = 380
	}
	if c.Network.ImportCapacityMW == 0 {
		c.Network.ImportCapacityMW = 1e6
	}
	if c.Network.ImportCostPerMWh == 0 {
		c.Network.ImportCostPerMWh = 200
	}
	if c.Solver.Name == "" {
		c.Solver.Name = "simplex"
	}
	if c.Solver.Tolerance == 0 {
		c.Solver.Tolerance = 1e-7
	}
	if c.Paths.ResultsDir == "" {
		c.Paths.ResultsDir = "results"
	}
	if c.WindowMaxDays == 0 {
		c.WindowMaxDays = 10
	}
	if c.Charts.WidthPX == 0 {
		c.Charts.WidthPX = 1200
	}
	if c.Charts.HeightPX == 0 {
		c.Charts.HeightPX = 600
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Scenario.Years) == 0 {
		return errors.New("scenario.years is required")
	}
	if len(c.Scenario.Buses) == 0 {
		return errors.New("scenario.buses is required")
	}
	seen := map[string]bool{}
	for _, b := range c.Scenario.Buses {
		if b == "" {
			return errors.New("scenario.buses must not contain empty names")
		}
		if seen[b] {
			return fmt.Errorf("scenario.buses: duplicate bus %q", b)
		}
		seen[b] = true
	}
	switch c.Solver.Name {
	case "simplex", "highs":
	default:
		return fmt.Errorf("solver.name must be simplex or highs, got %q", c.Solver.Name)
	}
	if c.Solver.Tolerance <= 0 {
		return errors.New("solver.tolerance must be > 0")
	}
	if !c.Network.DisableImports && c.Network.ImportCapacityMW <= 0 {
		return errors.New("network.import_capacity_mw must be > 0 when imports are enabled")
	}
	for _, p := range []struct{ name, path string }{
		{"paths.demand", c.Paths.Demand},
		{"paths.plants", c.Paths.Plants},
		{"paths.lines", c.Paths.Lines},
	} {
		if p.path == "" {
			return fmt.Errorf("%s is required", p.name)
		}
	}
	return nil
}

type networkFileWrapper struct {
	Network NetworkConfig `yaml:"network"`
}

func loadNetworkFile(path string) (NetworkConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return NetworkConfig{}, err
	}
	var w networkFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return NetworkConfig{}, err
	}
	return w.Network, nil
}

// MergeNetwork overlays non-zero fields from override onto base.
// This is used when loading a network file and then applying overrides from
// the scenario config.
func MergeNetwork(base, override NetworkConfig) NetworkConfig {
	out := base
	if override.VNomKV != 0 {
		out.VNomKV = override.VNomKV
	}
	if override.DisableImports {
		out.DisableImports = true
	}
	if override.ImportCapacityMW != 0 {
		out.ImportCapacityMW = override.ImportCapacityMW
	}
	if override.ImportCostPerMWh != 0 {
		out.ImportCostPerMWh = override.ImportCostPerMWh
	}
	return out
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalYAML = `
scenario:
  name: test
  years: [2025, 2026]
  buses: [bus_1, bus_2]
paths:
  demand: demand.csv
  plants: plants.csv
  lines: lines.csv
`

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", minimalYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Scenario.Name)
	assert.Equal(t, []int{2025, 2026}, cfg.Scenario.Years)
	assert.Equal(t, 380.0, cfg.Network.VNomKV)
	assert.Equal(t, 1e6, cfg.Network.ImportCapacityMW)
	assert.Equal(t, 200.0, cfg.Network.ImportCostPerMWh)
	assert.False(t, cfg.Network.DisableImports)
	assert.Equal(t, "simplex", cfg.Solver.Name)
	assert.Equal(t, 1e-7, cfg.Solver.Tolerance)
	assert.Equal(t, "results", cfg.Paths.ResultsDir)
	assert.Equal(t, 10, cfg.WindowMaxDays)
	assert.Equal(t, 1200, cfg.Charts.WidthPX)
	assert.Equal(t, 600, cfg.Charts.HeightPX)
}

func TestLoadNetworkFileInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "networks/default.yaml", `
network:
  v_nom_kv: 220
  import_cost_per_mwh: 300
`)

	t.Run("include is resolved relative to the config file", func(t *testing.T) {
		path := writeFile(t, dir, "config.yaml", minimalYAML+`
network_file: networks/default.yaml
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 220.0, cfg.Network.VNomKV)
		assert.Equal(t, 300.0, cfg.Network.ImportCostPerMWh)
	})

	t.Run("inline network block overrides the include", func(t *testing.T) {
		path := writeFile(t, dir, "override.yaml", minimalYAML+`
network_file: networks/default.yaml
network:
  v_nom_kv: 500
  disable_imports: true
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 500.0, cfg.Network.VNomKV)
		assert.True(t, cfg.Network.DisableImports)
		// untouched fields come from the included file
		assert.Equal(t, 300.0, cfg.Network.ImportCostPerMWh)
	})

	t.Run("missing include file is an error", func(t *testing.T) {
		path := writeFile(t, dir, "broken.yaml", minimalYAML+`
network_file: networks/nope.yaml
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Scenario.Years = []int{2025}
		c.Scenario.Buses = []string{"bus_1"}
		c.Paths.Demand = "d.csv"
		c.Paths.Plants = "p.csv"
		c.Paths.Lines = "l.csv"
		c.ApplyDefaults()
		return c
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("years required", func(t *testing.T) {
		c := valid()
		c.Scenario.Years = nil
		assert.Error(t, c.Validate())
	})

	t.Run("duplicate buses rejected", func(t *testing.T) {
		c := valid()
		c.Scenario.Buses = []string{"bus_1", "bus_1"}
		assert.Error(t, c.Validate())
	})

	t.Run("unknown solver rejected", func(t *testing.T) {
		c := valid()
		c.Solver.Name = "cplex"
		assert.Error(t, c.Validate())
	})

	t.Run("demand path required", func(t *testing.T) {
		c := valid()
		c.Paths.Demand = ""
		assert.Error(t, c.Validate())
	})
}

func TestMergeNetwork(t *testing.T) {
	base := NetworkConfig{VNomKV: 380, ImportCapacityMW: 1e6, ImportCostPerMWh: 200}

	got := MergeNetwork(base, NetworkConfig{VNomKV: 110})
	assert.Equal(t, 110.0, got.VNomKV)
	assert.Equal(t, 1e6, got.ImportCapacityMW)
	assert.Equal(t, 200.0, got.ImportCostPerMWh)

	got = MergeNetwork(base, NetworkConfig{DisableImports: true})
	assert.True(t, got.DisableImports)
	assert.Equal(t, 380.0, got.VNomKV)
}

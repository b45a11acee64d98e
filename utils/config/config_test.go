package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"

	"github.com/drivora/sandbox-go/utils/config"
)

func TestConfigUnmarshal(t *testing.T) {
	raw := `
input:
  uri: mongodb://localhost:27017
  map:
    db: maps
    col: networks
    dir: data/maps
    default: borregas_ave
control:
  fps: 50
  timeout: 60
`
	var c config.Config
	err := yaml.UnmarshalStrict([]byte(raw), &c)
	assert.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", c.Input.URI)
	assert.Equal(t, "maps", c.Input.Map.GetDb())
	assert.Equal(t, "networks", c.Input.Map.GetColl())
	assert.Equal(t, "borregas_ave", c.Input.Map.Default)
	assert.Equal(t, 50.0, c.Control.FPS)
	assert.Equal(t, 60.0, c.Control.Timeout)

	// test: unknown keys are rejected

	err = yaml.UnmarshalStrict([]byte("control:\n  fsp: 10\n"), &c)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var c config.Config
	c.FillDefaults()
	assert.Equal(t, config.DefaultFPS, c.Control.FPS)
	assert.Equal(t, config.DefaultTimeout, c.Control.Timeout)

	// test: explicit values survive

	c = config.Config{Control: config.Control{FPS: 30, Timeout: 15}}
	c.FillDefaults()
	assert.Equal(t, 30.0, c.Control.FPS)
	assert.Equal(t, 15.0, c.Control.Timeout)
}

func TestCachePath(t *testing.T) {
	p := config.InputPath{DB: "maps", Col: "networks"}
	assert.Equal(t, "maps.networks.town1.json", p.GetCachePath("town1"))

	p.Cache = "override.json"
	assert.Equal(t, "override.json", p.GetCachePath("town1"))
}

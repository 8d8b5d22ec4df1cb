package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Debug     bool `yaml:"debug"`
	Workers   int  `yaml:"workers"`
	MaxPixels int  `yaml:"max_pixels"`

	// Format is the extension used by convert when the output name has
	// none it recognises, e.g. "hdr".
	Format string `yaml:"format"`
}

func NewConfig() Config {
	return Config{
		Format: "png",
	}
}

// LoadConfig reads filename over the defaults. An empty filename gives the
// defaults.
func LoadConfig(filename string) (Config, error) {
	c := NewConfig()
	if filename == "" {
		return c, nil
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return c, fmt.Errorf("config read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("config parse %s: %w", filename, err)
	}
	if c.Workers < 0 || c.MaxPixels < 0 {
		return c, fmt.Errorf("config %s: workers and max_pixels must not be negative", filename)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config: %v\n", err)
	}
	return string(b)
}

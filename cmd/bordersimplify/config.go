package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config holds the defaults a TOML file can supply (SPEC_FULL.md
// §A.3); command-line flags always win when both are set.
type config struct {
	Tolerance float64 `toml:"tolerance"`
	Verbose   bool    `toml:"verbose"`
}

// loadConfig reads a TOML config file. A missing path is not an
// error — bordersimplify runs fine on flags alone.
func loadConfig(path string) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

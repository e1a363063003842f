package pops

import "github.com/BurntSushi/toml"

// LoadConfig parses a TOML file into a Config. It does not call
// Validate; the caller chains that explicitly, mirroring
// LoadEvoEpiConfig's separation of parsing from validation.
// dispersal_percentage defaults to 0.99 when the file omits it.
func LoadConfig(path string) (*Config, error) {
	conf := Config{Stochasticity: StochasticityConfig{DispersalPercentage: 0.99}}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

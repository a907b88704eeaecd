// Package config loads table settings from TOML files.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/theflywheel/slowhash"
)

const (
	HasherString = "string"
	HasherXXHash = "xxhash"
)

// Config mirrors the slowhash.Option set.
//
//	capacity = 1024
//	prime_a = 131
//	prime_b = 137
//	resize_up_percent = 70
//	resize_down_percent = 10
//	min_capacity = 2
//	hasher = "string"
type Config struct {
	Capacity          int    `toml:"capacity"`
	PrimeA            int    `toml:"prime_a"`
	PrimeB            int    `toml:"prime_b"`
	ResizeUpPercent   int    `toml:"resize_up_percent"`
	ResizeDownPercent int    `toml:"resize_down_percent"`
	MinCapacity       int    `toml:"min_capacity"`
	Hasher            string `toml:"hasher"`
}

// Default returns the settings of slowhash.New without options.
func Default() Config {
	return Config{
		Capacity:          slowhash.DefaultCapacity,
		PrimeA:            slowhash.DefaultPrimeA,
		PrimeB:            slowhash.DefaultPrimeB,
		ResizeUpPercent:   slowhash.DefaultResizeUpPercent,
		ResizeDownPercent: slowhash.DefaultResizeDownPercent,
		MinCapacity:       slowhash.DefaultMinCapacity,
		Hasher:            HasherString,
	}
}

// Load reads and validates the TOML file at path. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates TOML data. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "decoding toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Newf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that slowhash.New would panic on or that break
// the probe sequence guarantees.
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return errors.Newf("capacity must be positive, got %d", c.Capacity)
	}
	for _, p := range []int{c.PrimeA, c.PrimeB} {
		if slowhash.IsPrime(p) != slowhash.Prime {
			return errors.Newf("hash factor %d is not prime", p)
		}
		if p < 128 {
			return errors.Newf("hash factor %d must exceed the ASCII alphabet size", p)
		}
	}
	if c.PrimeA == c.PrimeB {
		return errors.Newf("prime_a and prime_b must differ, both are %d", c.PrimeA)
	}
	if c.ResizeDownPercent < 0 || c.ResizeUpPercent >= 100 || c.ResizeDownPercent >= c.ResizeUpPercent {
		return errors.Newf("resize thresholds must satisfy 0 <= down < up < 100, got down=%d up=%d",
			c.ResizeDownPercent, c.ResizeUpPercent)
	}
	if c.MinCapacity < slowhash.DefaultMinCapacity {
		return errors.Newf("min_capacity must be at least %d, got %d", slowhash.DefaultMinCapacity, c.MinCapacity)
	}
	switch c.Hasher {
	case HasherString, HasherXXHash:
	default:
		return errors.Newf("unknown hasher %q", c.Hasher)
	}
	return nil
}

// Options converts c into table options.
func (c Config) Options() []slowhash.Option {
	opts := []slowhash.Option{
		slowhash.WithCapacity(c.Capacity),
		slowhash.WithPrimes(c.PrimeA, c.PrimeB),
		slowhash.WithResizeThresholds(c.ResizeDownPercent, c.ResizeUpPercent),
		slowhash.WithMinCapacity(c.MinCapacity),
	}
	if c.Hasher == HasherXXHash {
		opts = append(opts, slowhash.WithXXHash())
	}
	return opts
}

package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

// Config holds defaults read from the config file. Command-line flags win
// over every value here.
type Config struct {
	CacheDir    string   `toml:"cache_dir"`
	RedisAddr   string   `toml:"redis_addr"`
	LibraryPath string   `toml:"library_path"`
	MongoURI    string   `toml:"mongo_uri"`
	ListenAddr  string   `toml:"listen_addr"`
	CacheTTL    duration `toml:"cache_ttl"`
}

// duration decodes TOML strings such as "36h" or "90m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// readConfig loads the config file at path. A missing file yields the zero
// Config unless required is set.
func readConfig(path string, required bool) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// readParams decodes a generator parameter file into v, then re-applies the
// flags that were set explicitly so they win over the file.
func readParams(path string, v any, flags *pflag.FlagSet, apply func(name string)) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read params %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "params %s: unknown key %q", path, undecoded[0].String())
	}
	flags.Visit(func(f *pflag.Flag) { apply(f.Name) })
	return nil
}

package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/apishape/internal/version"
	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "APISHAPE_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Sources names the optional layers of a load.
type Sources struct {
	// ConfigFile is an explicit --config file, TOML or YAML by extension.
	ConfigFile string
	// Flags holds only the flags set on the command line, keyed by long
	// flag name.
	Flags map[string]interface{}
}

// DefaultContent returns the embedded defaults file.
func DefaultContent() string {
	return string(defaultConfig)
}

// UserConfigPath is where the user config file is looked up.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, version.ToolName, "config.toml")
}

// Load merges every layer and unmarshals the result.
func Load(src Sources) (*Options, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "load defaults")
	}

	// 2. User config file, if any
	if path := UserConfigPath(); fileExists(path) {
		logger.Debug().Str("path", path).Msg("Loading user config")
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	// 3. Explicit config file
	if src.ConfigFile != "" {
		if !fileExists(src.ConfigFile) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", src.ConfigFile).
				WithDetail("path", src.ConfigFile)
		}
		logger.Debug().Str("path", src.ConfigFile).Msg("Loading config file")
		if err := loadFile(k, src.ConfigFile); err != nil {
			return nil, err
		}
	}

	// 4. Environment, known keys only
	known := func(s string) string {
		if key := envKey(s); k.Exists(key) {
			return key
		}
		return ""
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", known), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "load environment")
	}

	// 5. Flags set on the command line
	if len(src.Flags) > 0 {
		if err := k.Load(confmap.Provider(src.Flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "load flags")
		}
	}

	var opts Options
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &opts,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &opts, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshal configuration")
	}
	return &opts, nil
}

// envKey maps APISHAPE_LIB_PATH to lib-path.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

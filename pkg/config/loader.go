package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment variable read as configuration
	EnvPrefix = "ASSETWATCH_"
	// DotEnvFile is read from the project directory when present
	DotEnvFile = ".env"
)

// ProjectFiles are the configuration file names looked up in the project
// directory, in order
var ProjectFiles = []string{"assetwatch.toml", "assetwatch.yaml", "assetwatch.yml"}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ProjectDir anchors relative paths and holds the project file and
	// .env. Defaults to the working directory.
	ProjectDir string
	// ConfigFile replaces the project file lookup; it must exist
	ConfigFile string
	// Overrides are applied last, keyed by dotted path (e.g. "minify.script")
	Overrides map[string]interface{}
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	projectDir, err := filepath.Abs(defaultString(opts.ProjectDir, "."))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "invalid project directory")
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Project file
	path, err := projectFile(projectDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load config file").WithPath(path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 3. .env entries
	dotEnv, err := readDotEnv(filepath.Join(projectDir, DotEnvFile))
	if err != nil {
		return nil, err
	}
	if len(dotEnv) > 0 {
		if err := k.Load(confmap.Provider(dotEnv, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env")
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg, projectDir); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Strs("sources", cfg.Sources).
		Strs("destinations", cfg.Destinations).
		Msg("configuration loaded")
	return &cfg, nil
}

// projectFile returns the file to load, or "" when the project has none
func projectFile(projectDir, explicit string) (string, error) {
	if explicit != "" {
		path := absFrom(projectDir, explicit)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "config file not found").WithPath(path)
		}
		return path, nil
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// readDotEnv returns the prefixed entries of a .env file as config keys.
// A missing file yields nothing.
func readDotEnv(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read .env").WithPath(path)
	}

	out := make(map[string]interface{})
	for name, value := range vars {
		if strings.HasPrefix(name, EnvPrefix) {
			out[envKey(name)] = value
		}
	}
	return out, nil
}

// envKey turns ASSETWATCH_MINIFY__SCRIPT into minify.script
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// postProcess resolves relative paths and reads the header file
func postProcess(cfg *Config, projectDir string) error {
	cfg.Sources = absAll(projectDir, cfg.Sources)
	cfg.Destinations = absAll(projectDir, cfg.Destinations)
	cfg.Stylesheet.IncludePaths = absAll(projectDir, cfg.Stylesheet.IncludePaths)

	if cfg.HeaderFile != "" {
		cfg.HeaderFile = absFrom(projectDir, cfg.HeaderFile)
		content, err := os.ReadFile(cfg.HeaderFile)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "failed to read header file").WithPath(cfg.HeaderFile)
		}
		cfg.Header = strings.TrimRight(string(content), "\r\n")
	}
	return nil
}

func absAll(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, absFrom(base, p))
		}
	}
	return out
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

package config

import (
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

type optionsSource struct {
	name     string
	provider koanf.Provider
	parser   koanf.Parser
}

func optionsSources() []optionsSource {
	return []optionsSource{
		{name: OptionsFile, parser: toml.Parser()},
		{name: OptionsFileYAML, parser: kyaml.Parser()},
	}
}

// Load builds the environment object from env and the options file found in
// workflowDir on the OS filesystem. An empty workflowDir skips the options file.
func Load(env environ.Environ, workflowDir string) (*Env, error) {
	var src *optionsSource
	if workflowDir != "" {
		fsys := filesystem.NewOS()
		for _, candidate := range optionsSources() {
			path := filepath.Join(workflowDir, candidate.name)
			if filesystem.Exists(fsys, path) {
				candidate.provider = file.Provider(path)
				src = &candidate
				break
			}
		}
	}
	return load(env, src)
}

// LoadFS is Load reading the options file through fsys.
func LoadFS(env environ.Environ, fsys types.FS, workflowDir string) (*Env, error) {
	var src *optionsSource
	if workflowDir != "" {
		for _, candidate := range optionsSources() {
			path := filepath.Join(workflowDir, candidate.name)
			if !filesystem.Exists(fsys, path) {
				continue
			}
			data, err := fsys.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
			}
			candidate.provider = &rawBytesProvider{bytes: data}
			src = &candidate
			break
		}
	}
	return load(env, src)
}

func load(env environ.Environ, src *optionsSource) (*Env, error) {
	// 1. Launcher variables
	vars := make(map[string]interface{})
	for k, v := range env.Launcher() {
		vars[launcherKey(k)] = v
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(vars, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load launcher variables")
	}

	// Malformed launcher values decode to the zero value.
	cfg := New()
	launcherConf := unmarshalConf(cfg)
	launcherConf.DecoderConfig.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		lenientScalarHook(logging.GetLogger("config")),
		launcherConf.DecoderConfig.DecodeHook,
	)
	if err := k.UnmarshalWithConf("", cfg, launcherConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode launcher variables")
	}

	// 2. Library defaults, then the options file
	ko := koanf.New(".")
	if err := ko.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	optionsName := "defaults"
	if src != nil {
		optionsName = src.name
		if err := ko.Load(src.provider, src.parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", src.name)
		}
	}
	if err := ko.UnmarshalWithConf("", &cfg.Options, unmarshalConf(&cfg.Options)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode %s", optionsName)
	}

	return cfg, nil
}

func unmarshalConf(result interface{}) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           result,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
}

// lenientScalarHook replaces strings that do not parse as the target int or
// bool with that type's zero value.
func lenientScalarHook(logger zerolog.Logger) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		s, ok := data.(string)
		if !ok || s == "" {
			return data, nil
		}
		var err error
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			s = strings.TrimSpace(s)
			_, err = strconv.ParseInt(s, 0, to.Bits())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			s = strings.TrimSpace(s)
			_, err = strconv.ParseUint(s, 0, to.Bits())
		case reflect.Bool:
			_, err = strconv.ParseBool(s)
		default:
			return data, nil
		}
		if err != nil {
			logger.Debug().Str("value", s).Str("type", to.Kind().String()).Msg("Ignoring malformed launcher value")
			return reflect.Zero(to).Interface(), nil
		}
		return s, nil
	}
}

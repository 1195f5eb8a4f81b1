package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// readSection loads the YAML file at path and decodes the section keyed by
// envName. keys lists the dot-separated leaf keys written in the section,
// empty values included. found is false when the file has no such section.
func readSection(path, envName string) (cfg Config, keys []string, found bool, err error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
	}

	if envName == "" || !k.Exists(envName) {
		return Config{}, nil, false, nil
	}

	err = k.UnmarshalWithConf(envName, &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				socketHook,
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: section %q: %w", ErrConfigRead, path, envName, err)
	}

	return cfg, k.Cut(envName).Keys(), true, nil
}

var socketType = reflect.TypeOf(Socket{})

// socketHook accepts the short forms of server.socket: `true` and a path.
func socketHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != socketType {
		return data, nil
	}

	switch v := data.(type) {
	case bool:
		return map[string]any{"enabled": v}, nil
	case string:
		return map[string]any{"path": v}, nil
	}

	return data, nil
}

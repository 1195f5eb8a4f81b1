package config

import (
	"fmt"
	"reflect"
	"strings"
)

// CheckDeprecated warns once for every entry of DeprecatedItems that is set
// in the current configuration or written in the loaded file section, even
// with an empty value, and returns the number of warnings.
func (m *Manager) CheckDeprecated() int {
	cfg := m.Get()

	m.mu.RLock()
	fileKeys := m.fileKeys
	m.mu.RUnlock()

	warnings := 0
	for _, item := range cfg.DeprecatedItems {
		if !hasPath(cfg, item) && !inKeys(fileKeys, item) {
			continue
		}

		m.reporter.LogWarn(
			fmt.Sprintf("The configuration property [%s] has been deprecated.", item),
			"This will be removed in a future version, please update your config.yaml file.",
			"Please check config.example.yaml for the most up-to-date example.")
		warnings++
	}

	return warnings
}

// hasPath reports whether the dot-separated koanf key path resolves to a set
// value in cfg. Struct fields are matched by their koanf tag and must be
// non-zero at the end of the path; map entries count as soon as the key
// exists. The walk stops at the first missing segment.
func hasPath(cfg Config, path string) bool {
	v := reflect.ValueOf(cfg)
	fromMap := false

	for _, segment := range strings.Split(path, ".") {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return false
			}
			v = v.Elem()
		}

		switch v.Kind() {
		case reflect.Struct:
			field, ok := fieldByTag(v, segment)
			if !ok {
				return false
			}
			v, fromMap = field, false
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return false
			}
			elem := v.MapIndex(reflect.ValueOf(segment).Convert(v.Type().Key()))
			if !elem.IsValid() {
				return false
			}
			v, fromMap = elem, true
		default:
			return false
		}
	}

	return fromMap || !v.IsZero()
}

// inKeys reports whether path is one of keys or a prefix of one of them.
func inKeys(keys []string, path string) bool {
	for _, key := range keys {
		if key == path || strings.HasPrefix(key, path+".") {
			return true
		}
	}

	return false
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := range t.NumField() {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("koanf"), ",")
		if tag == name {
			return v.Field(i), true
		}
	}

	return reflect.Value{}, false
}

// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envOverrides maps each AGENTE_* variable to the setting it replaces.
var envOverrides = []struct {
	name  string
	apply func(c *Config, v string)
}{
	{"AGENTE_CATALOG", func(c *Config, v string) { c.Catalog.Path = v }},
	{"AGENTE_THINKING_DELAY_MS", func(c *Config, v string) {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Agent.ThinkingDelayMs = ms
		}
	}},
	{"AGENTE_LOG_LEVEL", func(c *Config, v string) { c.Log.Level = strings.ToLower(v) }},
	{"AGENTE_LOG_FILE", func(c *Config, v string) { c.Log.File = v }},
	{"AGENTE_THEME", func(c *Config, v string) { c.UI.Theme = strings.ToLower(v) }},
	{"AGENTE_EXPORT_DIR", func(c *Config, v string) { c.Export.Dir = v }},
	{"AGENTE_AUDIO", func(c *Config, v string) { c.Audio.Enabled = parseBool(v) }},
}

// ApplyEnvOverrides layers the non-empty AGENTE_* variables over c.
// A delay that is not a number is ignored.
func (c *Config) ApplyEnvOverrides() {
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.apply(c, v)
		}
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "si", "sí":
		return true
	}
	return false
}

// =============================================================================
// DOTTED KEYS
// =============================================================================

// GetAllKeys lists every settable key, in file order.
func GetAllKeys() []string {
	return []string{
		"agent.thinking_delay_ms",
		"agent.welcome",
		"catalog.path",
		"audio.enabled",
		"audio.volume",
		"audio.speak_ms",
		"ui.theme",
		"ui.compact",
		"log.level",
		"log.file",
		"export.dir",
	}
}

// Get returns the value at a dotted key such as "audio.volume".
func (c *Config) Get(key string) (any, error) {
	f, err := c.field(key)
	if err != nil {
		return nil, err
	}
	return f.Interface(), nil
}

// Set assigns the value at a dotted key. Strings are parsed into the
// field's type, so "0.5" sets a volume. Set does not validate.
func (c *Config) Set(key string, value any) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	if s, ok := value.(string); ok {
		return setString(f, s)
	}
	v := reflect.ValueOf(value)
	switch {
	case !v.IsValid():
		return fmt.Errorf("%s: nil value", key)
	case v.Type().AssignableTo(f.Type()):
		f.Set(v)
	case v.Type().ConvertibleTo(f.Type()):
		f.Set(v.Convert(f.Type()))
	default:
		return fmt.Errorf("%s: cannot assign %T to %s", key, value, f.Type())
	}
	return nil
}

// field walks the section and setting names of key down from c.
func (c *Config) field(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	v := reflect.ValueOf(c).Elem()
	parts := strings.Split(key, ".")
	for i, part := range parts {
		name := normalizeFieldName(part)
		v = v.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
		path := strings.Join(parts[:i+1], ".")

		last := i == len(parts)-1
		switch {
		case !v.IsValid():
			return reflect.Value{}, fmt.Errorf("unknown key: %s", path)
		case last && v.Kind() == reflect.Struct:
			return reflect.Value{}, fmt.Errorf("%s is a section, not a setting", path)
		case !last && v.Kind() != reflect.Struct:
			return reflect.Value{}, fmt.Errorf("%s has no sub-keys", path)
		}
	}
	return v, nil
}

// normalizeFieldName turns "thinking_delay_ms" or "speak-ms" into the Go
// field name.
func normalizeFieldName(name string) string {
	var sb strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' }) {
		sb.WriteString(strings.ToUpper(word[:1]))
		sb.WriteString(strings.ToLower(word[1:]))
	}
	return sb.String()
}

func setString(f reflect.Value, s string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(s)
	case reflect.Bool:
		f.SetBool(parseBool(s))
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not an integer", s)
		}
		f.SetInt(n)
	case reflect.Float64:
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		f.SetFloat(x)
	default:
		return fmt.Errorf("unsupported setting type %s", f.Type())
	}
	return nil
}

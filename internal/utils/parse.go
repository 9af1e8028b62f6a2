package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile decodes the config file at path into v. Keys the config
// struct does not know about are reported at warn level and otherwise ignored.
func DecodeTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Unknown config key %q in %s", key.String(), path)
	}
	return nil
}

// TOMLTable is a loosely typed view of a config file, used to salvage the
// well typed keys of a file that does not decode into the config struct.
type TOMLTable map[string]any

// ReadTOMLTable parses path without a target schema.
func ReadTOMLTable(path string) (TOMLTable, error) {
	table := make(TOMLTable)
	if _, err := toml.DecodeFile(path, (*map[string]any)(&table)); err != nil {
		return nil, err
	}
	return table, nil
}

// Section returns the [name] table.
func (t TOMLTable) Section(name string) (TOMLTable, bool) {
	section, ok := t[name].(map[string]any)
	return section, ok
}

// Int returns key when it holds a TOML integer.
func (t TOMLTable) Int(key string) (int, bool) {
	val, ok := t[key].(int64)
	return int(val), ok
}

// Bool returns key when it holds a TOML boolean.
func (t TOMLTable) Bool(key string) (bool, bool) {
	val, ok := t[key].(bool)
	return val, ok
}

// String returns key when it holds a TOML string.
func (t TOMLTable) String(key string) (string, bool) {
	val, ok := t[key].(string)
	return val, ok
}

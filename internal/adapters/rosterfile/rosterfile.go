// Package rosterfile loads rosters from YAML or JSON documents of the form
//
//	players:
//	  - name: Ana
//	    position: MID
//	    attack: 7
//
// JSON is read by the same parser since it is valid YAML.
package rosterfile

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/okian/teampick/internal/domain/roster"
)

// PlayersKey is the document key holding the player list.
const PlayersKey = "players"

// Sentinel error kinds for this package.
var (
	ErrRead      = errors.New("read roster file")
	ErrNoPlayers = errors.New("roster file has no players list")
	ErrNotWhole  = errors.New("rating is not a whole number")
)

// Load reads the roster document at path.
func Load(path string) ([]roster.Entry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRead, path, err)
	}
	return decode(k)
}

// Parse reads a roster document held in memory.
func Parse(b []byte) ([]roster.Entry, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return decode(k)
}

func decode(k *koanf.Koanf) ([]roster.Entry, error) {
	if !k.Exists(PlayersKey) {
		return nil, ErrNoPlayers
	}
	var entries []roster.Entry
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.DecodeHookFuncType(strictScalars),
			Result:           &entries,
			WeaklyTypedInput: false,
		},
	}
	if err := k.UnmarshalWithConf(PlayersKey, &entries, conf); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrRead, PlayersKey, err)
	}
	return entries, nil
}

// strictScalars accepts only whole numbers for integer fields and lets
// numeric names through as text.
func strictScalars(_, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int:
		switch v := data.(type) {
		case bool:
			return nil, fmt.Errorf("%t: %w", v, ErrNotWhole)
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%v: %w", v, ErrNotWhole)
			}
			return int(v), nil
		}
	case reflect.String:
		switch v := data.(type) {
		case int:
			return strconv.Itoa(v), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
	}
	return data, nil
}

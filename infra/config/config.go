package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Path is the directory of the json config files.
var Path = "infra/config"

// Load loads the config for the given key into v.
func Load(key string, v interface{}) error {

	p := filepath.Join(Path, fmt.Sprintf("%s.json", key))
	b, err := ioutil.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not load config for %s: %w", key, err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}

	log.Info().Str("config", key).Str("path", p).Msg("loaded config")

	return nil
}

// MustLoad loads the config for the given key and panics if it fails.
func MustLoad(key string, v interface{}) {
	if err := Load(key, v); err != nil {
		panic(err.Error())
	}
}

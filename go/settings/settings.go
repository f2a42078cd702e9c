// Package settings reads statline's external configuration, currently just
// the debug flag controlling the emitter's per-event trace. Values come
// from an optional config file and from STATLINE_-prefixed environment
// variables; file changes are picked up live.
package settings

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"go.statline.org/statline/go/stlog"
)

const envPrefix = "statline"

// Settings is a get-only view of external configuration.
type Settings struct {
	v *viper.Viper
}

// New returns Settings backed by the config file at path, or by environment
// variables alone when path is empty. The file is watched for changes.
func New(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings from %s: %w", path, err)
		}
		v.OnConfigChange(func(e fsnotify.Event) {
			stlog.Infof("Settings reloaded from %s", e.Name)
		})
		v.WatchConfig()
	}
	return &Settings{v: v}, nil
}

// Debug returns the current value of the debug flag. The method value
// s.Debug is suitable as an events.Emitter debug getter.
func (s *Settings) Debug() bool {
	return s.v.GetBool("debug")
}

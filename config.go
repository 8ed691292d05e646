package choirdeck

import (
	"os"
	"path/filepath"

	"github.com/michaelquigley/df/dd"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost          = "10.0.0.50"
	DefaultFadeFps       = 10
	DefaultInstanceType  = "behringer-x32"
	DefaultInstanceLabel = "x32"
	DefaultUpgradeIndex  = 2
	DefaultRotaryStep    = 0.3
	DefaultResetLabel    = "RESET"
	DefaultResetColor    = 0xcc0000
)

// Settings tunes the generated surface. Every key is optional; absent keys take the defaults.
type Settings struct {
	Host                string
	FadeFps             uint32
	InstanceType        string
	InstanceLabel       string
	UpgradeIndex        uint32
	RotaryStep          float32
	ResetLabel          string
	ResetColor          uint32
	MasterTarget        string
	DisableMuteFeedback bool
	EnableMuteToggle    bool
}

func DefaultSettings() *Settings {
	return &Settings{
		Host:          DefaultHost,
		FadeFps:       DefaultFadeFps,
		InstanceType:  DefaultInstanceType,
		InstanceLabel: DefaultInstanceLabel,
		UpgradeIndex:  DefaultUpgradeIndex,
		RotaryStep:    DefaultRotaryStep,
		ResetLabel:    DefaultResetLabel,
		ResetColor:    DefaultResetColor,
		MasterTarget:  MasterBus,
	}
}

// settingsKeys are the YAML keys of Settings.
var settingsKeys = []string{
	"host",
	"fade_fps",
	"instance_type",
	"instance_label",
	"upgrade_index",
	"rotary_step",
	"reset_label",
	"reset_color",
	"master_target",
	"disable_mute_feedback",
	"enable_mute_toggle",
}

// applyDefaults fills every key absent from the settings file with its default; keys that are present keep
// their value, zero included.
func (s *Settings) applyDefaults(present map[string]bool) {
	def := DefaultSettings()
	if !present["host"] {
		s.Host = def.Host
	}
	if !present["fade_fps"] {
		s.FadeFps = def.FadeFps
	}
	if !present["instance_type"] {
		s.InstanceType = def.InstanceType
	}
	if !present["instance_label"] {
		s.InstanceLabel = def.InstanceLabel
	}
	if !present["upgrade_index"] {
		s.UpgradeIndex = def.UpgradeIndex
	}
	if !present["rotary_step"] {
		s.RotaryStep = def.RotaryStep
	}
	if !present["reset_label"] {
		s.ResetLabel = def.ResetLabel
	}
	if !present["reset_color"] {
		s.ResetColor = def.ResetColor
	}
	if !present["master_target"] {
		s.MasterTarget = def.MasterTarget
	}
}

// settingsPresent reports which keys the settings file sets, rejecting keys Settings does not have.
func settingsPresent(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(settingsKeys))
	for _, k := range settingsKeys {
		known[k] = true
	}
	present := make(map[string]bool, len(raw))
	for k := range raw {
		if !known[k] {
			return nil, errors.Errorf("unknown settings key '%v'", k)
		}
		present[k] = true
	}
	return present, nil
}

// MainSettingsPath is where settings are looked up when no path is given.
func MainSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "choirdeck", "settings.yaml"), nil
}

// LoadMainSettings loads the settings at MainSettingsPath, or the defaults when that file does not exist.
func LoadMainSettings() (*Settings, error) {
	path, err := MainSettingsPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	return LoadSettings(path)
}

func LoadSettings(path string) (*Settings, error) {
	present, err := settingsPresent(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading settings '%v'", path)
	}
	s, err := dd.NewFromYAML[Settings](path)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading settings '%v'", path)
	}
	s.applyDefaults(present)
	return s, nil
}

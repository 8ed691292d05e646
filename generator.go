package choirdeck

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
)

// Generator builds a complete surface configuration from a groups file.
type Generator struct {
	settings *Settings
	input    *Input
}

func NewGenerator(settings *Settings, input *Input) *Generator {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Generator{
		settings: settings,
		input:    input,
	}
}

// Build lays out all PageCount pages. Page p carries the navigation and utility rows; when group p-1
// exists it also carries that group's view and rotary rows. Groups past PageCount only appear in
// the navigation row.
func (g *Generator) Build() (*Config, error) {
	cfg := NewConfig()

	instanceID := NewID()
	cfg.Instances[instanceID] = NewInstance(g.settings.InstanceType, g.settings.InstanceLabel, g.settings.UpgradeIndex, g.settings.Host, g.settings.FadeFps)
	dl.Debugf("instance '%v' (%v) at '%v'", instanceID, g.settings.InstanceType, g.settings.Host)

	mapper := NewControlMapper(g.settings, g.input, instanceID)
	groups := g.input.Groups
	if len(groups) > PageCount {
		dl.Debugf("%d groups exceed %d pages; groups beyond page %d get navigation only", len(groups), PageCount, PageCount)
	}

	for p := 1; p <= PageCount; p++ {
		page := NewPage()

		nav, err := mapper.NavigationRow()
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", p)
		}
		page.Controls[RowNavigation] = nav
		page.Controls[RowUtility] = mapper.UtilityRow()

		if idx := p - 1; idx < len(groups) {
			group := groups[idx]
			page.Controls[RowView] = mapper.ViewRow(group)
			page.Controls[RowRotary] = mapper.RotaryRow(group)
			dl.Debugf("page %d owned by group '%v' (%d channels)", p, group.Name, len(group.Channels))
		}

		cfg.Pages[strconv.Itoa(p)] = page
	}
	return cfg, nil
}

// EncodeConfig renders cfg as indented JSON.
func EncodeConfig(cfg *Config) ([]byte, error) {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "error encoding configuration")
	}
	return append(out, '\n'), nil
}

// WriteConfig encodes cfg fully before writing anything to w.
func WriteConfig(cfg *Config, w io.Writer) error {
	out, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "error writing configuration")
	}
	return nil
}

// SaveConfig writes cfg to path through a temporary file, so path is either replaced whole or left untouched.
func SaveConfig(cfg *Config, path string) error {
	out, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "error creating temporary file for '%v'", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "error setting mode on '%v'", tmp.Name())
	}

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "error writing '%v'", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "error closing '%v'", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "error replacing '%v'", path)
	}
	dl.Debugf("wrote %d bytes to '%v'", len(out), path)
	return nil
}

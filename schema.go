package choirdeck

import (
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// PageCount is the number of addressable pages on the surface; every generated configuration carries all of them.
	PageCount = 99

	ConfigVersion   = 4
	ConfigType      = "full"
	DefaultPageName = "PAGE"
)

// Config is the top-level import document understood by the surface application.
type Config struct {
	Version   uint32               `json:"version"`
	Type      string               `json:"type"`
	Pages     map[string]*Page     `json:"pages"`
	Instances map[string]*Instance `json:"instances"`
}

// NewConfig returns a configuration with all PageCount pages present and empty.
func NewConfig() *Config {
	cfg := &Config{
		Version:   ConfigVersion,
		Type:      ConfigType,
		Pages:     make(map[string]*Page, PageCount),
		Instances: make(map[string]*Instance),
	}
	for p := 1; p <= PageCount; p++ {
		cfg.Pages[strconv.Itoa(p)] = NewPage()
	}
	return cfg
}

// Page returns the page for the 1-based page number, or nil.
func (c *Config) Page(number int) *Page {
	return c.Pages[strconv.Itoa(number)]
}

type Page struct {
	Name     string                         `json:"name"`
	Controls map[string]map[string]*Control `json:"controls"`
	GridSize GridSize                       `json:"gridSize"`
}

func NewPage() *Page {
	return &Page{
		Name:     DefaultPageName,
		Controls: make(map[string]map[string]*Control),
		GridSize: DefaultGridSize(),
	}
}

// Row returns the controls in the row, creating the row if it is missing.
func (p *Page) Row(row string) map[string]*Control {
	r, found := p.Controls[row]
	if !found {
		r = make(map[string]*Control)
		p.Controls[row] = r
	}
	return r
}

type GridSize struct {
	MinColumn uint32 `json:"minColumn"`
	MaxColumn uint32 `json:"maxColumn"`
	MinRow    uint32 `json:"minRow"`
	MaxRow    uint32 `json:"maxRow"`
}

func DefaultGridSize() GridSize {
	return GridSize{MinColumn: 0, MaxColumn: 3, MinRow: 0, MaxRow: 3}
}

// Instance describes one configured connection to an external device.
type Instance struct {
	InstanceType     string         `json:"instance_type"`
	Label            string         `json:"label"`
	SortOrder        uint32         `json:"sortOrder"`
	IsFirstInit      bool           `json:"isFirstInit"`
	Config           InstanceConfig `json:"config"`
	Enabled          bool           `json:"enabled"`
	LastUpgradeIndex uint32         `json:"lastUpgradeIndex"`
}

type InstanceConfig struct {
	Host    string `json:"host"`
	FadeFps uint32 `json:"fadeFps"`
}

// NewInstance creates an enabled, already-initialized instance sorted first.
func NewInstance(instanceType, label string, upgradeIndex uint32, host string, fadeFps uint32) *Instance {
	return &Instance{
		InstanceType:     instanceType,
		Label:            label,
		SortOrder:        1,
		IsFirstInit:      false,
		Config:           InstanceConfig{Host: host, FadeFps: fadeFps},
		Enabled:          true,
		LastUpgradeIndex: upgradeIndex,
	}
}

// DecodeConfig strictly parses a configuration document. Keys unknown to the schema are errors at every level.
func DecodeConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading configuration")
	}
	cfg := &Config{}
	if err := decodeStrict(data, cfg); err != nil {
		return nil, errors.Wrap(err, "configuration does not match schema")
	}
	return cfg, nil
}

// LoadConfig strictly parses the configuration document at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening '%v'", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading '%v'", path)
	}
	return cfg, nil
}

package choirdeck

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Input is the user-authored groups file.
type Input struct {
	Groups []Group `yaml:"groups"`
}

// Group is a named set of channels; each group owns one page of the surface.
type Group struct {
	Name     string    `yaml:"name"`
	Channels []Channel `yaml:"channels"`
}

// Channel is one "[display name, channel reference]" pair. The reference may be written as a
// number ("1") or an X32 address ("/bus/01", "1/2").
type Channel struct {
	Name      string
	Reference string
}

func (c Channel) Path() ChannelPath {
	return NewChannelPath(c.Reference)
}

func (c *Channel) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return errors.Errorf("line %d: channel must be a [name, reference] pair", node.Line)
	}
	name, ref := node.Content[0], node.Content[1]
	if name.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: channel name must be a scalar", name.Line)
	}
	if ref.Kind != yaml.ScalarNode || (ref.Tag != "!!str" && ref.Tag != "!!int") {
		return errors.Errorf("line %d: channel reference must be a string or integer", ref.Line)
	}
	c.Name = name.Value
	c.Reference = ref.Value
	return nil
}

func (c Channel) MarshalYAML() (interface{}, error) {
	return []string{c.Name, c.Reference}, nil
}

// DecodeInput parses a groups document, rejecting unknown keys and missing or null required keys.
func DecodeInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading groups document")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	in := &Input{}
	if err := dec.Decode(in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("groups document is empty")
		}
		return nil, errors.Wrap(err, "groups document does not match schema")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "groups document does not match schema")
	}
	if err := requireGroupKeys(&doc); err != nil {
		return nil, errors.Wrap(err, "groups document does not match schema")
	}
	return in, nil
}

// requireGroupKeys checks that the document names its groups, and that every group has a name and channels.
func requireGroupKeys(doc *yaml.Node) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return errors.New("missing field 'groups'")
	}
	groups, err := requiredKey(doc.Content[0], "groups")
	if err != nil {
		return err
	}
	for i, group := range groups.Content {
		if group.Kind != yaml.MappingNode {
			return errors.Errorf("line %d: group %d must be a mapping", group.Line, i)
		}
		for _, key := range []string{"name", "channels"} {
			if _, err := requiredKey(group, key); err != nil {
				return errors.Wrapf(err, "group %d", i)
			}
		}
	}
	return nil
}

func requiredKey(mapping *yaml.Node, key string) (*yaml.Node, error) {
	if mapping.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			if mapping.Content[i].Value != key {
				continue
			}
			value := mapping.Content[i+1]
			if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
				return nil, errors.Errorf("line %d: field '%s' is null", value.Line, key)
			}
			return value, nil
		}
	}
	return nil, errors.Errorf("line %d: missing field '%s'", mapping.Line, key)
}

func LoadInput(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening '%v'", path)
	}
	defer func() { _ = f.Close() }()

	in, err := DecodeInput(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading '%v'", path)
	}
	return in, nil
}

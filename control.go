package choirdeck

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type ControlKind string

const (
	ControlButton   ControlKind = "button"
	ControlPageUp   ControlKind = "pageup"
	ControlPageDown ControlKind = "pagedown"
)

// Control is one grid cell. Only ControlButton carries a payload.
type Control struct {
	Kind   ControlKind
	Button *ButtonControl
}

func ButtonCell(button *ButtonControl) *Control {
	return &Control{Kind: ControlButton, Button: button}
}

func PageUpCell() *Control {
	return &Control{Kind: ControlPageUp}
}

func PageDownCell() *Control {
	return &Control{Kind: ControlPageDown}
}

func (c Control) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ControlButton:
		if c.Button == nil {
			return nil, errors.New("button control without button payload")
		}
		return marshalTagged("type", string(c.Kind), c.Button)
	case ControlPageUp, ControlPageDown:
		return marshalTagged("type", string(c.Kind), nil)
	default:
		return nil, errors.Errorf("unknown control type '%v'", c.Kind)
	}
}

func (c *Control) UnmarshalJSON(data []byte) error {
	tag, payload, err := splitTagged(data, "type")
	if err != nil {
		return errors.Wrap(err, "invalid control")
	}
	switch kind := ControlKind(tag); kind {
	case ControlButton:
		button := &ButtonControl{}
		if err := decodeStrict(payload, button); err != nil {
			return errors.Wrap(err, "invalid button control")
		}
		*c = Control{Kind: kind, Button: button}
	case ControlPageUp, ControlPageDown:
		if err := requireEmpty(tag, payload); err != nil {
			return err
		}
		*c = Control{Kind: kind}
	default:
		return errors.Errorf("unknown control type '%v'", tag)
	}
	return nil
}

// ButtonControl is a programmable button: its look, its step behaviour, the feedbacks restyling it, and its steps.
type ButtonControl struct {
	Style     Style            `json:"style"`
	Options   Options          `json:"options"`
	Feedbacks []Feedback       `json:"feedbacks"`
	Steps     map[string]*Step `json:"steps"`
}

type Style struct {
	Text         string  `json:"text"`
	Size         string  `json:"size"`
	PNG          *string `json:"png,omitempty"`
	Alignment    string  `json:"alignment"`
	PNGAlignment string  `json:"pngalignment"`
	Color        uint32  `json:"color"`
	BgColor      uint32  `json:"bgcolor"`
	ShowTopBar   string  `json:"show_topbar"`
}

const (
	ColorWhite uint32 = 0xffffff
	ColorBlack uint32 = 0x000000
	ColorRed   uint32 = 0xff0000
)

// DefaultStyle is white, centered, auto-sized text on black.
func DefaultStyle(text string) Style {
	return Style{
		Text:         text,
		Size:         "auto",
		Alignment:    "center:center",
		PNGAlignment: "center:center",
		Color:        ColorWhite,
		BgColor:      ColorBlack,
		ShowTopBar:   "default",
	}
}

type Options struct {
	RelativeDelay    bool  `json:"relativeDelay"`
	StepAutoProgress bool  `json:"stepAutoProgress"`
	RotaryActions    *bool `json:"rotaryActions,omitempty"`
}

func DefaultOptions() Options {
	return Options{
		RelativeDelay:    false,
		StepAutoProgress: true,
	}
}

// Step is one entry of a button's step cycle.
type Step struct {
	ActionSets ActionSet   `json:"action_sets"`
	Options    StepOptions `json:"options"`
}

func NewStep() *Step {
	return &Step{
		ActionSets: ActionSet{Down: []Action{}, Up: []Action{}},
		Options:    StepOptions{RunWhileHeld: []int{}},
	}
}

// ActionSet holds the actions fired per button event. Rotate sets are present only on rotary buttons.
type ActionSet struct {
	Down        []Action  `json:"down"`
	Up          []Action  `json:"up"`
	RotateLeft  *[]Action `json:"rotate_left,omitempty"`
	RotateRight *[]Action `json:"rotate_right,omitempty"`
}

type StepOptions struct {
	RunWhileHeld []int `json:"runWhileHeld"`
}

// compile-time checks
var (
	_ json.Marshaler   = Control{}
	_ json.Unmarshaler = (*Control)(nil)
)

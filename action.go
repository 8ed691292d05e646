package choirdeck

import (
	"strconv"

	"github.com/pkg/errors"
)

type ActionKind string

const (
	ActionSetPage    ActionKind = "set_page_byindex"
	ActionSetFader   ActionKind = "fad"
	ActionFaderDelta ActionKind = "fader_delta"
	ActionGoScene    ActionKind = "go_scene"
	ActionMute       ActionKind = "mute"
)

// InternalInstance addresses the surface application itself rather than a device connection.
const InternalInstance = "internal"

const (
	FadeAlgorithmLinear = "linear"
	FadeTypeEaseIn      = "ease_in"
)

type MuteState uint32

const (
	MuteOff MuteState = iota
	MuteOn
	MuteToggle
)

// Action is one step action. Exactly the payload matching Kind is set.
type Action struct {
	Kind       ActionKind
	SetPage    *SetPageAction
	SetFader   *SetFaderAction
	FaderDelta *FaderDeltaAction
	GoScene    *GoSceneAction
	Mute       *MuteAction
}

func (a Action) payload() (any, error) {
	var body any
	var present bool
	switch a.Kind {
	case ActionSetPage:
		body, present = a.SetPage, a.SetPage != nil
	case ActionSetFader:
		body, present = a.SetFader, a.SetFader != nil
	case ActionFaderDelta:
		body, present = a.FaderDelta, a.FaderDelta != nil
	case ActionGoScene:
		body, present = a.GoScene, a.GoScene != nil
	case ActionMute:
		body, present = a.Mute, a.Mute != nil
	default:
		return nil, errors.Errorf("unknown action '%v'", a.Kind)
	}
	if !present {
		return nil, errors.Errorf("action '%v' without payload", a.Kind)
	}
	return body, nil
}

// ID returns the identifier of whichever payload is set.
func (a Action) ID() string {
	switch a.Kind {
	case ActionSetPage:
		return a.SetPage.ID
	case ActionSetFader:
		return a.SetFader.ID
	case ActionFaderDelta:
		return a.FaderDelta.ID
	case ActionGoScene:
		return a.GoScene.ID
	case ActionMute:
		return a.Mute.ID
	}
	return ""
}

func (a Action) MarshalJSON() ([]byte, error) {
	body, err := a.payload()
	if err != nil {
		return nil, err
	}
	return marshalTagged("action", string(a.Kind), body)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	tag, payload, err := splitTagged(data, "action")
	if err != nil {
		return errors.Wrap(err, "invalid action")
	}
	out := Action{Kind: ActionKind(tag)}
	var target any
	switch out.Kind {
	case ActionSetPage:
		out.SetPage = &SetPageAction{}
		target = out.SetPage
	case ActionSetFader:
		out.SetFader = &SetFaderAction{}
		target = out.SetFader
	case ActionFaderDelta:
		out.FaderDelta = &FaderDeltaAction{}
		target = out.FaderDelta
	case ActionGoScene:
		out.GoScene = &GoSceneAction{}
		target = out.GoScene
	case ActionMute:
		out.Mute = &MuteAction{}
		target = out.Mute
	default:
		return errors.Errorf("unknown action '%v'", tag)
	}
	if err := decodeStrict(payload, target); err != nil {
		return errors.Wrapf(err, "invalid '%v' action", tag)
	}
	*a = out
	return nil
}

type SetPageAction struct {
	ID       string      `json:"id"`
	Instance string      `json:"instance"`
	Options  PageOptions `json:"options"`
	Delay    uint32      `json:"delay"`
}

type PageOptions struct {
	Controller       uint32 `json:"controller"`
	PageFromVariable bool   `json:"page_from_variable"`
	Page             uint32 `json:"page"`
	PageVariable     string `json:"page_variable"`
}

type SetFaderAction struct {
	ID       string       `json:"id"`
	Instance string       `json:"instance"`
	Options  FaderOptions `json:"options"`
	Delay    uint32       `json:"delay"`
}

type FaderOptions struct {
	Target        string  `json:"target"`
	Fad           float32 `json:"fad"`
	FadeDuration  uint32  `json:"fadeDuration"`
	FadeAlgorithm string  `json:"fadeAlgorithm"`
	FadeType      string  `json:"fadeType"`
}

type FaderDeltaAction struct {
	ID       string            `json:"id"`
	Instance string            `json:"instance"`
	Options  FaderDeltaOptions `json:"options"`
	Delay    uint32            `json:"delay"`
}

type FaderDeltaOptions struct {
	Target        string  `json:"target"`
	Delta         float32 `json:"delta"`
	FadeDuration  uint32  `json:"fadeDuration"`
	FadeAlgorithm string  `json:"fadeAlgorithm"`
	FadeType      string  `json:"fadeType"`
}

type GoSceneAction struct {
	ID       string         `json:"id"`
	Instance string         `json:"instance"`
	Options  GoSceneOptions `json:"options"`
	Delay    uint32         `json:"delay"`
}

type GoSceneOptions struct {
	Scene uint32 `json:"scene"`
}

type MuteAction struct {
	ID       string      `json:"id"`
	Instance string      `json:"instance"`
	Options  MuteOptions `json:"options"`
	Delay    uint32      `json:"delay"`
}

type MuteOptions struct {
	Target string    `json:"target"`
	Mute   MuteState `json:"mute"`
}

// NewSetPageAction jumps the surface to page on the internal instance.
func NewSetPageAction(page uint32) Action {
	return Action{
		Kind: ActionSetPage,
		SetPage: &SetPageAction{
			ID:       NewID(),
			Instance: InternalInstance,
			Options: PageOptions{
				Controller:       0,
				PageFromVariable: false,
				Page:             page,
				PageVariable:     strconv.FormatUint(uint64(page), 10),
			},
		},
	}
}

// NewSetFaderAction moves the channel fader to an absolute value, immediately.
func NewSetFaderAction(instanceID string, channel ChannelPath, value float32) Action {
	return Action{
		Kind: ActionSetFader,
		SetFader: &SetFaderAction{
			ID:       NewID(),
			Instance: instanceID,
			Options: FaderOptions{
				Target:        channel.Target(),
				Fad:           value,
				FadeAlgorithm: FadeAlgorithmLinear,
				FadeType:      FadeTypeEaseIn,
			},
		},
	}
}

// NewFaderDeltaAction nudges the channel fader by delta, immediately.
func NewFaderDeltaAction(instanceID string, channel ChannelPath, delta float32) Action {
	return Action{
		Kind: ActionFaderDelta,
		FaderDelta: &FaderDeltaAction{
			ID:       NewID(),
			Instance: instanceID,
			Options: FaderDeltaOptions{
				Target:        channel.Target(),
				Delta:         delta,
				FadeAlgorithm: FadeAlgorithmLinear,
				FadeType:      FadeTypeEaseIn,
			},
		},
	}
}

func NewGoSceneAction(instanceID string, scene uint32) Action {
	return Action{
		Kind: ActionGoScene,
		GoScene: &GoSceneAction{
			ID:       NewID(),
			Instance: instanceID,
			Options:  GoSceneOptions{Scene: scene},
		},
	}
}

func NewMuteAction(instanceID string, channel ChannelPath, state MuteState) Action {
	return Action{
		Kind: ActionMute,
		Mute: &MuteAction{
			ID:       NewID(),
			Instance: instanceID,
			Options:  MuteOptions{Target: channel.Target(), Mute: state},
		},
	}
}

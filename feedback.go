package choirdeck

import (
	"github.com/pkg/errors"
)

type FeedbackKind string

const FeedbackMute FeedbackKind = "mute"

// Feedback restyles a button from device state.
type Feedback struct {
	Kind FeedbackKind
	Mute *MuteFeedback
}

type MuteFeedback struct {
	ID         string              `json:"id"`
	InstanceID string              `json:"instance_id"`
	Options    MuteFeedbackOptions `json:"options"`
	Style      ColorStyle          `json:"style"`
}

type MuteFeedbackOptions struct {
	Target string `json:"target"`
	State  bool   `json:"state"`
}

type ColorStyle struct {
	Color   uint32 `json:"color"`
	BgColor uint32 `json:"bgcolor"`
}

// NewMuteFeedback paints the button red while the channel is muted.
func NewMuteFeedback(instanceID string, channel ChannelPath) Feedback {
	return Feedback{
		Kind: FeedbackMute,
		Mute: &MuteFeedback{
			ID:         NewID(),
			InstanceID: instanceID,
			Options:    MuteFeedbackOptions{Target: channel.Target(), State: true},
			Style:      ColorStyle{Color: ColorBlack, BgColor: ColorRed},
		},
	}
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FeedbackMute:
		if f.Mute == nil {
			return nil, errors.New("mute feedback without payload")
		}
		return marshalTagged("type", string(f.Kind), f.Mute)
	default:
		return nil, errors.Errorf("unknown feedback type '%v'", f.Kind)
	}
}

func (f *Feedback) UnmarshalJSON(data []byte) error {
	tag, payload, err := splitTagged(data, "type")
	if err != nil {
		return errors.Wrap(err, "invalid feedback")
	}
	switch kind := FeedbackKind(tag); kind {
	case FeedbackMute:
		mute := &MuteFeedback{}
		if err := decodeStrict(payload, mute); err != nil {
			return errors.Wrap(err, "invalid mute feedback")
		}
		*f = Feedback{Kind: kind, Mute: mute}
	default:
		return errors.Errorf("unknown feedback type '%v'", tag)
	}
	return nil
}

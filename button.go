package choirdeck

import (
	"github.com/google/uuid"
)

// StepKey is the only step index the generator produces.
const StepKey = "0"

// NewID returns a fresh random identifier for actions, feedbacks and instances.
func NewID() string {
	return uuid.NewString()
}

// NewButton creates a button with the default style and options and no steps.
func NewButton(text string) *ButtonControl {
	return &ButtonControl{
		Style:     DefaultStyle(text),
		Options:   DefaultOptions(),
		Feedbacks: []Feedback{},
		Steps:     make(map[string]*Step),
	}
}

// NewPageSelectButton jumps to page when pressed.
func NewPageSelectButton(text string, page uint32) *ButtonControl {
	return NewButton(text).AddDownAction(NewSetPageAction(page))
}

// NewChannelViewButton shows the channel name above its live fader level.
func NewChannelViewButton(text string, channel ChannelPath) *ButtonControl {
	return NewButton(text + "\n" + channel.View())
}

// NewChannelRotaryButton turns the channel fader by step per encoder detent.
func NewChannelRotaryButton(text, instanceID string, channel ChannelPath, step float32) *ButtonControl {
	b := NewButton(text)
	rotary := true
	b.Options.RotaryActions = &rotary

	left := []Action{NewFaderDeltaAction(instanceID, channel, -step)}
	right := []Action{NewFaderDeltaAction(instanceID, channel, step)}
	s := NewStep()
	s.ActionSets.RotateLeft = &left
	s.ActionSets.RotateRight = &right
	b.Steps[StepKey] = s
	return b
}

// NewResetButton recalls scene 0 and pulls the master fader down.
func NewResetButton(text string, bgColor uint32, instanceID string, master ChannelPath) *ButtonControl {
	return NewButton(text).
		WithBackgroundColor(bgColor).
		AddDownAction(NewGoSceneAction(instanceID, 0)).
		AddDownAction(NewSetFaderAction(instanceID, master, 0.0))
}

func (b *ButtonControl) step() *Step {
	s, found := b.Steps[StepKey]
	if !found {
		s = NewStep()
		b.Steps[StepKey] = s
	}
	return s
}

func (b *ButtonControl) AddDownAction(action Action) *ButtonControl {
	s := b.step()
	s.ActionSets.Down = append(s.ActionSets.Down, action)
	return b
}

func (b *ButtonControl) AddUpAction(action Action) *ButtonControl {
	s := b.step()
	s.ActionSets.Up = append(s.ActionSets.Up, action)
	return b
}

func (b *ButtonControl) WithBackgroundColor(color uint32) *ButtonControl {
	b.Style.BgColor = color
	return b
}

func (b *ButtonControl) AddFeedback(feedback Feedback) *ButtonControl {
	b.Feedbacks = append(b.Feedbacks, feedback)
	return b
}

func (b *ButtonControl) AddMuteFeedback(instanceID string, channel ChannelPath) *ButtonControl {
	return b.AddFeedback(NewMuteFeedback(instanceID, channel))
}

package choirdeck

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Row keys of the page grid.
const (
	RowNavigation = "0"
	RowUtility    = "1"
	RowView       = "2"
	RowRotary     = "3"

	ResetColumn = "0"
)

// ErrIndexOverflow reports a group or channel position that does not fit the surface's integer width.
var ErrIndexOverflow = errors.New("index overflows uint32")

// ControlMapper maps the groups file onto rows of surface controls
type ControlMapper struct {
	settings   *Settings
	input      *Input
	instanceID string
}

func NewControlMapper(settings *Settings, input *Input, instanceID string) *ControlMapper {
	return &ControlMapper{
		settings:   settings,
		input:      input,
		instanceID: instanceID,
	}
}

// pageNumber converts a 0-based group index to its 1-based page number.
func pageNumber(index int) (uint32, error) {
	if index < 0 || uint64(index)+1 > math.MaxUint32 {
		return 0, errors.Wrapf(ErrIndexOverflow, "group index %d", index)
	}
	return uint32(index + 1), nil
}

// NavigationRow has one page-select button per group, in group order. The row is the same on every page.
func (cm *ControlMapper) NavigationRow() (map[string]*Control, error) {
	row := make(map[string]*Control, len(cm.input.Groups))
	for i, group := range cm.input.Groups {
		page, err := pageNumber(i)
		if err != nil {
			return nil, errors.Wrapf(err, "group %d (%s)", i, group.Name)
		}
		row[strconv.Itoa(i)] = ButtonCell(NewPageSelectButton(group.Name, page))
	}
	return row, nil
}

// UtilityRow holds the reset button.
func (cm *ControlMapper) UtilityRow() map[string]*Control {
	reset := NewResetButton(cm.settings.ResetLabel, cm.settings.ResetColor, cm.instanceID, NewChannelPath(cm.settings.MasterTarget))
	return map[string]*Control{ResetColumn: ButtonCell(reset)}
}

// ViewRow shows each channel's name and fader level, keyed by channel position within the group.
func (cm *ControlMapper) ViewRow(group Group) map[string]*Control {
	row := make(map[string]*Control, len(group.Channels))
	for j, ch := range group.Channels {
		path := ch.Path()
		button := NewChannelViewButton(ch.Name, path)
		if !cm.settings.DisableMuteFeedback {
			button.AddMuteFeedback(cm.instanceID, path)
		}
		if cm.settings.EnableMuteToggle {
			button.AddDownAction(NewMuteAction(cm.instanceID, path, MuteToggle))
		}
		row[strconv.Itoa(j)] = ButtonCell(button)
	}
	return row
}

// RotaryRow gives each channel an encoder fader, keyed by channel position within the group.
func (cm *ControlMapper) RotaryRow(group Group) map[string]*Control {
	row := make(map[string]*Control, len(group.Channels))
	for j, ch := range group.Channels {
		row[strconv.Itoa(j)] = ButtonCell(NewChannelRotaryButton(ch.Name, cm.instanceID, ch.Path(), cm.settings.RotaryStep))
	}
	return row
}

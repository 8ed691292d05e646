package choirdeck

import (
	"fmt"
	"strconv"
	"strings"
)

// MasterBus is the X32 address of the main stereo bus.
const MasterBus = "/main/st"

// ChannelPath renders one raw channel token from the groups file into the forms the surface needs.
// A token that parses as an unsigned integer is an input channel number; anything else is an X32 address.
type ChannelPath struct {
	token string
}

func NewChannelPath(token string) ChannelPath {
	return ChannelPath{token: token}
}

func (c ChannelPath) Token() string {
	return c.token
}

// number accepts one optional leading '+', never '-'.
func (c ChannelPath) number() (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimPrefix(c.token, "+"), 10, 32)
	return n, err == nil
}

// View returns the label variable showing the channel's fader level, e.g. "$(x32:fader_ch_01)".
func (c ChannelPath) View() string {
	if n, ok := c.number(); ok {
		return fmt.Sprintf("$(x32:fader_ch_%02d)", n)
	}
	return fmt.Sprintf("$(x32:fader%s)", strings.ReplaceAll(c.token, "/", "_"))
}

// Target returns the X32 address used by actions and feedbacks, e.g. "/ch/01".
func (c ChannelPath) Target() string {
	if n, ok := c.number(); ok {
		return fmt.Sprintf("/ch/%02d", n)
	}
	return c.token
}

func (c ChannelPath) String() string {
	return c.Target()
}

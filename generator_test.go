package choirdeck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputWithGroups(n, channels int) *Input {
	in := &Input{}
	for i := 0; i < n; i++ {
		g := Group{Name: fmt.Sprintf("G%d", i)}
		for j := 0; j < channels; j++ {
			g.Channels = append(g.Channels, Channel{Name: fmt.Sprintf("C%d", j), Reference: strconv.Itoa(j + 1)})
		}
		in.Groups = append(in.Groups, g)
	}
	return in
}

func build(t *testing.T, settings *Settings, in *Input) *Config {
	t.Helper()
	cfg, err := NewGenerator(settings, in).Build()
	require.NoError(t, err)
	return cfg
}

func TestBuildAlwaysHasAllPages(t *testing.T) {
	for _, n := range []int{0, 1, 50, 120} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			cfg := build(t, nil, inputWithGroups(n, 2))
			require.Len(t, cfg.Pages, PageCount)
			for p := 1; p <= PageCount; p++ {
				require.Contains(t, cfg.Pages, strconv.Itoa(p))
			}
			require.Len(t, cfg.Instances, 1)
		})
	}
}

func TestBuildNavigationRow(t *testing.T) {
	cfg := build(t, nil, inputWithGroups(5, 1))
	for p := 1; p <= PageCount; p++ {
		row := cfg.Page(p).Controls[RowNavigation]
		require.Len(t, row, 5)
		for i := 0; i < 5; i++ {
			c := row[strconv.Itoa(i)]
			require.Equal(t, ControlButton, c.Kind)
			assert.Equal(t, fmt.Sprintf("G%d", i), c.Button.Style.Text)
			down := c.Button.Steps[StepKey].ActionSets.Down
			require.Len(t, down, 1)
			assert.Equal(t, uint32(i+1), down[0].SetPage.Options.Page)
		}
	}
}

func TestBuildOwnedRows(t *testing.T) {
	in := &Input{Groups: []Group{
		{Name: "A", Channels: []Channel{{"a1", "1"}, {"a2", "2"}, {"a3", "3"}}},
		{Name: "B", Channels: []Channel{{"b1", "/bus/01"}}},
	}}
	cfg := build(t, nil, in)

	for p := 1; p <= PageCount; p++ {
		page := cfg.Page(p)
		assert.Contains(t, page.Controls, RowUtility)
		switch p {
		case 1:
			assert.Len(t, page.Controls[RowView], 3)
			assert.Len(t, page.Controls[RowRotary], 3)
		case 2:
			assert.Len(t, page.Controls[RowView], 1)
			assert.Len(t, page.Controls[RowRotary], 1)
			assert.Equal(t, "b1\n$(x32:fader_bus_01)", page.Controls[RowView]["0"].Button.Style.Text)
		default:
			assert.NotContains(t, page.Controls, RowView, "page %d", p)
			assert.NotContains(t, page.Controls, RowRotary, "page %d", p)
		}
	}
}

func TestBuildBandScenario(t *testing.T) {
	in := &Input{Groups: []Group{{Name: "Band", Channels: []Channel{{"Kick", "1"}, {"Snare", "2"}}}}}
	cfg := build(t, nil, in)

	var instanceID string
	for id := range cfg.Instances {
		instanceID = id
	}

	page := cfg.Page(1)
	nav := page.Controls[RowNavigation]
	require.Len(t, nav, 1)
	assert.Equal(t, "Band", nav["0"].Button.Style.Text)
	assert.Equal(t, uint32(1), nav["0"].Button.Steps[StepKey].ActionSets.Down[0].SetPage.Options.Page)

	view := page.Controls[RowView]
	require.Len(t, view, 2)
	assert.Equal(t, "Kick\n$(x32:fader_ch_01)", view["0"].Button.Style.Text)
	assert.Equal(t, "Snare\n$(x32:fader_ch_02)", view["1"].Button.Style.Text)
	assert.Equal(t, "/ch/01", view["0"].Button.Feedbacks[0].Mute.Options.Target)
	assert.Equal(t, "/ch/02", view["1"].Button.Feedbacks[0].Mute.Options.Target)
	assert.Equal(t, instanceID, view["0"].Button.Feedbacks[0].Mute.InstanceID)

	assert.Empty(t, view["0"].Button.Steps)
	assert.Empty(t, view["1"].Button.Steps)

	rotary := page.Controls[RowRotary]
	require.Len(t, rotary, 2)
	assert.Equal(t, "Kick", rotary["0"].Button.Style.Text)
	assert.Equal(t, "Snare", rotary["1"].Button.Style.Text)
	right := (*rotary["1"].Button.Steps[StepKey].ActionSets.RotateRight)[0]
	assert.Equal(t, "/ch/02", right.FaderDelta.Options.Target)
	assert.Equal(t, float32(DefaultRotaryStep), right.FaderDelta.Options.Delta)
	assert.Equal(t, instanceID, right.FaderDelta.Instance)

	reset := page.Controls[RowUtility][ResetColumn].Button
	assert.Equal(t, DefaultResetLabel, reset.Style.Text)
	assert.Equal(t, MasterBus, reset.Steps[StepKey].ActionSets.Down[1].SetFader.Options.Target)

	assert.NotContains(t, cfg.Page(2).Controls, RowView)
}

func TestBuildMuteToggle(t *testing.T) {
	settings := DefaultSettings()
	settings.EnableMuteToggle = true
	cfg := build(t, settings, &Input{Groups: []Group{{Name: "Band", Channels: []Channel{{"Kick", "1"}}}}})

	view := cfg.Page(1).Controls[RowView]["0"].Button
	toggle := view.Steps[StepKey].ActionSets.Down
	require.Len(t, toggle, 1)
	assert.Equal(t, ActionMute, toggle[0].Kind)
	assert.Equal(t, MuteToggle, toggle[0].Mute.Options.Mute)
	assert.Equal(t, "/ch/01", toggle[0].Mute.Options.Target)
	assert.Len(t, view.Feedbacks, 1)

	_, err := DecodeConfig(bytes.NewReader(mustEncode(t, cfg)))
	require.NoError(t, err)
}

func mustEncode(t *testing.T, cfg *Config) []byte {
	t.Helper()
	out, err := EncodeConfig(cfg)
	require.NoError(t, err)
	return out
}

func TestBuildMoreGroupsThanPages(t *testing.T) {
	cfg := build(t, nil, inputWithGroups(PageCount+5, 1))
	for p := 1; p <= PageCount; p++ {
		page := cfg.Page(p)
		assert.Len(t, page.Controls[RowNavigation], PageCount+5)
		assert.Contains(t, page.Controls, RowView)
	}
	last := cfg.Page(1).Controls[RowNavigation][strconv.Itoa(PageCount+4)]
	assert.Equal(t, uint32(PageCount+5), last.Button.Steps[StepKey].ActionSets.Down[0].SetPage.Options.Page)
}

func TestBuildSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.Host = "192.168.1.20"
	settings.RotaryStep = 0.5
	settings.ResetLabel = "PANIC"
	settings.DisableMuteFeedback = true

	cfg := build(t, settings, inputWithGroups(1, 1))
	for _, inst := range cfg.Instances {
		assert.Equal(t, "192.168.1.20", inst.Config.Host)
		assert.Equal(t, uint32(DefaultFadeFps), inst.Config.FadeFps)
		assert.Equal(t, DefaultInstanceType, inst.InstanceType)
		assert.Equal(t, uint32(DefaultUpgradeIndex), inst.LastUpgradeIndex)
		assert.True(t, inst.Enabled)
	}

	page := cfg.Page(1)
	view := page.Controls[RowView]["0"].Button
	assert.Empty(t, view.Feedbacks)
	assert.Empty(t, view.Steps)

	left := (*page.Controls[RowRotary]["0"].Button.Steps[StepKey].ActionSets.RotateLeft)[0]
	assert.Equal(t, float32(-0.5), left.FaderDelta.Options.Delta)
	assert.Equal(t, "PANIC", page.Controls[RowUtility][ResetColumn].Button.Style.Text)
}

func TestBuildIdentifiersUnique(t *testing.T) {
	cfg := build(t, nil, inputWithGroups(3, 4))
	seen := make(map[string]bool)
	check := func(id string) {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	for id := range cfg.Instances {
		check(id)
	}
	for _, page := range cfg.Pages {
		for _, row := range page.Controls {
			for _, c := range row {
				for _, f := range c.Button.Feedbacks {
					check(f.Mute.ID)
				}
				for _, s := range c.Button.Steps {
					all := append(append([]Action{}, s.ActionSets.Down...), s.ActionSets.Up...)
					if s.ActionSets.RotateLeft != nil {
						all = append(all, *s.ActionSets.RotateLeft...)
					}
					if s.ActionSets.RotateRight != nil {
						all = append(all, *s.ActionSets.RotateRight...)
					}
					for _, a := range all {
						check(a.ID())
					}
				}
			}
		}
	}
}

func TestBuildRoundTrip(t *testing.T) {
	cfg := build(t, nil, &Input{Groups: []Group{
		{Name: "Band", Channels: []Channel{{"Kick", "1"}, {"Keys", "1/2"}}},
		{Name: "Choir", Channels: []Channel{{"Sop", "17"}}},
	}})

	first, err := EncodeConfig(cfg)
	require.NoError(t, err)

	back, err := DecodeConfig(bytes.NewReader(first))
	require.NoError(t, err)

	second, err := EncodeConfig(back)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"delta": -0.3`)
}

func TestPageNumberOverflow(t *testing.T) {
	n, err := pageNumber(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n)

	_, err = pageNumber(-1)
	assert.True(t, errors.Is(err, ErrIndexOverflow))

	if strconv.IntSize == 64 {
		big := int(uint64(1) << 32)
		_, err = pageNumber(big - 1)
		assert.True(t, errors.Is(err, ErrIndexOverflow))
		n, err = pageNumber(big - 2)
		require.NoError(t, err)
		assert.Equal(t, uint32(1<<32-1), n)
	}
}

func TestWriteConfig(t *testing.T) {
	cfg := build(t, nil, inputWithGroups(1, 1))
	var buf bytes.Buffer
	require.NoError(t, WriteConfig(cfg, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"version\": 4,\n  \"type\": \"full\","))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	cfg := build(t, nil, inputWithGroups(2, 2))
	require.NoError(t, SaveConfig(cfg, path))

	back, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, back.Pages, PageCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

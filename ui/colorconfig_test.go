package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termblocks/config"
)

func newTestColorConfig(t *testing.T) (*ColorConfigUI, *config.Config, *int) {
	t.Helper()
	cfg := config.DefaultConfig.Clone()
	saves := 0
	cc := NewColorConfig(cfg, nil)
	cc.save = func() error {
		saves++
		return nil
	}
	return cc, cfg, &saves
}

func TestColorConfigPickSwatch(t *testing.T) {
	cc, cfg, saves := newTestColorConfig(t)

	cc.selectItem(0)
	require.True(t, cc.pickingColor)
	assert.Equal(t, len(swatches), cc.colorList.GetItemCount())

	cc.selectItem(8)
	assert.False(t, cc.pickingColor)
	assert.Equal(t, swatches[8], cc.Palette()[0])
	assert.Equal(t, swatches[8], cfg.Theme.Palette[0])
	assert.Equal(t, 1, *saves)
	assert.Equal(t, len(cc.Palette())+1, cc.colorList.GetItemCount())
}

func TestColorConfigCancel(t *testing.T) {
	cc, cfg, saves := newTestColorConfig(t)
	assert.False(t, cc.Cancel())

	cc.selectItem(1)
	cc.colorList.SetCurrentItem(10)
	assert.Equal(t, swatches[10], cc.Palette()[1], "preview follows the cursor")

	assert.True(t, cc.Cancel())
	assert.Equal(t, cfg.Theme.Palette, cc.Palette())
	assert.Equal(t, config.DefaultTheme.Palette[1], cfg.Theme.Palette[1])
	assert.Zero(t, *saves)
}

func TestColorConfigAddAndRemove(t *testing.T) {
	cc, cfg, saves := newTestColorConfig(t)
	n := len(cc.Palette())

	cc.selectItem(n)
	assert.Len(t, cfg.Theme.Palette, n+1)

	cc.colorList.SetCurrentItem(0)
	cc.RemoveSlot()
	assert.Len(t, cfg.Theme.Palette, n)
	assert.Equal(t, config.DefaultTheme.Palette[1], cfg.Theme.Palette[0])
	assert.Equal(t, 2, *saves)

	for len(cc.Palette()) > 1 {
		cc.colorList.SetCurrentItem(0)
		cc.RemoveSlot()
	}
	cc.RemoveSlot()
	assert.Len(t, cfg.Theme.Palette, 1)
}

func TestColorConfigSaveError(t *testing.T) {
	cc, _, _ := newTestColorConfig(t)
	cc.save = func() error { return errors.New("read-only") }

	cc.selectItem(len(cc.Palette()))
	require.Error(t, cc.saveErr)

	screen := newSimScreen(t, 80, 24)
	cc.preview.SetRect(0, 0, 60, 20)
	cc.preview.Draw(screen)
	assert.Contains(t, rowText(screen, 11, 60), "Save failed")
}

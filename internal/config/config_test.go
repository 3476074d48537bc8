package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectiongroup/internal/domain"
	"selectiongroup/internal/eventbus"
	"selectiongroup/internal/selection"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	bus := eventbus.New()
	var loaded eventbus.ConfigLoadedEvent
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		loaded = e.(eventbus.ConfigLoadedEvent)
	})

	cfg, err := NewConfigServiceWithBus(path, bus).Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, path, loaded.Path)
	assert.Equal(t, len(cfg.Items), loaded.ItemCount)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	bus := eventbus.New()
	saved := ""
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		saved = e.(eventbus.ConfigSavedEvent).Path
	})
	svc := NewConfigServiceWithBus(path, bus)

	allow := false
	cfg := DefaultConfig()
	cfg.Title = "Toppings"
	cfg.Selection = SelectionSettings{MaxMultiSelect: 3, AllowDeselect: &allow, DefaultSelection: []int{1}}
	cfg.Items = []ItemConfig{{Label: "Cheese"}, {Label: "Olives", Description: "black"}}

	require.NoError(t, svc.Save(cfg))
	assert.Equal(t, path, saved)

	got, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestSavedFileIsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, NewConfigServiceAt(path).SaveToPath(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "version = 1")
	assert.Contains(t, content, "[selection]")
	assert.Contains(t, content, "[[items]]")
	assert.Contains(t, content, "max_multi_select = 1")
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
title = "Colours"

[selection]
max_multi_select = 2

[[items]]
label = "Red"

[[items]]
label = "Green"
description = "like grass"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "Colours", cfg.Title)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, DefaultConfig().UI, cfg.UI)
	assert.Equal(t, []domain.Item{
		{Label: "Red"},
		{Label: "Green", Description: "like grass"},
	}, cfg.DomainItems())

	opts := cfg.SelectionOptions()
	assert.Equal(t, 2, opts.MaxMultiSelect)
	assert.True(t, opts.AllowDeselect)
	assert.Empty(t, opts.DefaultSelection)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()
	svc := NewConfigServiceAt(filepath.Join(dir, "config.toml"))

	_, err := svc.LoadFromPath(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("title = ["), 0644))
	_, err = svc.LoadFromPath(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestExplicitZeroMaxIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[selection]
max_multi_select = 0

[[items]]
label = "Red"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Selection.MaxMultiSelect)
	assert.Equal(t, 0, cfg.SelectionOptions().MaxMultiSelect)
	require.ErrorIs(t, cfg.Validate(), selection.ErrInvalidConfiguration)
}

func TestSelectionOptions(t *testing.T) {
	assert.Equal(t, selection.DefaultOptions(), DefaultConfig().SelectionOptions())

	cfg := &Config{}
	opts := cfg.SelectionOptions()
	assert.Equal(t, 0, opts.MaxMultiSelect, "zero is passed through, not defaulted")
	assert.True(t, opts.AllowDeselect)
	require.ErrorIs(t, opts.Validate(), selection.ErrInvalidConfiguration)

	allow := false
	cfg.Selection = SelectionSettings{MaxMultiSelect: 4, AllowDeselect: &allow, DefaultSelection: []int{0, 2}}
	assert.Equal(t, selection.Options{MaxMultiSelect: 4, AllowDeselect: false, DefaultSelection: []int{0, 2}},
		cfg.SelectionOptions())
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	empty := DefaultConfig()
	empty.Items = nil
	require.ErrorIs(t, empty.Validate(), ErrNoItems)

	zero := DefaultConfig()
	zero.Selection.MaxMultiSelect = 0
	require.ErrorIs(t, zero.Validate(), selection.ErrInvalidConfiguration)

	negative := DefaultConfig()
	negative.Selection.MaxMultiSelect = -1
	require.ErrorIs(t, negative.Validate(), selection.ErrInvalidConfiguration)

	tooMany := DefaultConfig()
	tooMany.Selection.DefaultSelection = []int{0, 1}
	require.ErrorIs(t, tooMany.Validate(), selection.ErrInvalidConfiguration)

	outside := DefaultConfig()
	outside.Selection.DefaultSelection = []int{len(outside.Items)}
	require.ErrorIs(t, outside.Validate(), selection.ErrInvalidConfiguration)
}

func TestServicePath(t *testing.T) {
	assert.Equal(t, "/tmp/x.toml", NewConfigServiceAt("/tmp/x.toml").Path())
	assert.Equal(t, "config.toml", filepath.Base(NewConfigService().Path()))
}

package dashboard

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationRenderMarksOnlyExactPath(t *testing.T) {
	t.Parallel()
	panel := &NavigationPanel{Primary: DefaultPrimaryNavigation(), Secondary: DefaultSecondaryNavigation()}

	view := panel.Render("/dashboard")

	require.Len(t, view.Primary, len(DefaultPrimaryNavigation()))
	require.Len(t, view.Secondary, len(DefaultSecondaryNavigation()))
	active := 0
	for _, item := range append(view.Primary, view.Secondary...) {
		if item.Active {
			active++
			assert.Equal(t, "/dashboard", item.Path)
		}
	}
	assert.Equal(t, 1, active)
}

func TestNavigationRenderNoPrefixMatching(t *testing.T) {
	t.Parallel()
	panel := &NavigationPanel{Primary: []NavigationEntry{
		{Path: "/leads", Label: "Leads"},
		{Path: "/leads/archive", Label: "Archive"},
	}}

	view := panel.Render("/leads/archive")

	assert.False(t, view.Primary[0].Active)
	assert.True(t, view.Primary[1].Active)
}

func TestNavigationRenderEmptyGroups(t *testing.T) {
	t.Parallel()
	view := (&NavigationPanel{}).Render("/dashboard")
	assert.Empty(t, view.Primary)
	assert.Empty(t, view.Secondary)
}

func TestNavigationSelectInvokesCallback(t *testing.T) {
	t.Parallel()
	var selected []string
	panel := &NavigationPanel{
		Primary:   DefaultPrimaryNavigation(),
		Secondary: DefaultSecondaryNavigation(),
		OnSelect:  func(entry NavigationEntry) { selected = append(selected, entry.Path) },
	}

	entry, err := panel.Select("/settings")
	require.NoError(t, err)
	assert.Equal(t, "Settings", entry.Label)
	assert.Equal(t, []string{"/settings"}, selected)

	_, err = panel.Select("/missing")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
	assert.Len(t, selected, 1)
}

func TestNavigationRenderLocalized(t *testing.T) {
	t.Parallel()
	panel := &NavigationPanel{Primary: []NavigationEntry{{Path: "/leads", Label: "Leads"}}}
	translator := CatalogTranslator{Messages: map[string]map[string]string{
		"dashboard.nav.leads": {"es": "Prospectos"},
	}}

	view := panel.RenderLocalized(context.Background(), translator, "es", "/leads")

	assert.Equal(t, "Prospectos", view.Primary[0].Label)
}

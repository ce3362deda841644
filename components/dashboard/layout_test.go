package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell() *LayoutShell {
	return NewLayoutShell(DefaultBrand, DefaultPageTitle, DefaultActivePath, DefaultNavigation())
}

func TestLayoutShellToggleTwiceRestoresState(t *testing.T) {
	t.Parallel()
	shell := newTestShell()
	before := shell.View(context.Background(), nil, "")

	assert.True(t, shell.ToggleDrawer())
	assert.False(t, shell.ToggleDrawer())

	after := shell.View(context.Background(), nil, "")
	assert.Equal(t, before, after)
}

func TestLayoutShellMobileSelectionClosesDrawer(t *testing.T) {
	t.Parallel()
	shell := newTestShell()
	shell.OpenDrawer()

	entry, err := shell.Navigate("/leads")
	require.NoError(t, err)

	assert.Equal(t, "Leads", entry.Label)
	assert.False(t, shell.DrawerOpen())
	assert.Equal(t, "/leads", shell.View(context.Background(), nil, "").ActivePath)
}

func TestLayoutShellDesktopSelectionLeavesDrawer(t *testing.T) {
	t.Parallel()
	shell := newTestShell()

	_, err := shell.Navigate("/calendar")
	require.NoError(t, err)
	assert.False(t, shell.DrawerOpen())

	_, err = shell.Navigate("/nope")
	require.Error(t, err)
	assert.Equal(t, "/calendar", shell.View(context.Background(), nil, "").ActivePath)
}

func TestLayoutShellViewHighlightsActivePath(t *testing.T) {
	t.Parallel()
	view := newTestShell().View(context.Background(), nil, "")

	assert.Equal(t, "LeadsCo", view.Brand)
	assert.Equal(t, "Dashboard", view.Title)
	require.NotEmpty(t, view.Navigation.Primary)
	assert.True(t, view.Navigation.Primary[0].Active)
	for _, item := range view.Navigation.Primary[1:] {
		assert.False(t, item.Active, item.Path)
	}
	assert.Len(t, view.CreateMenu, 4)
}

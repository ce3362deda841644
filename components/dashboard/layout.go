package dashboard

import (
	"context"
	"sync"
)

// LayoutShell wraps every section with a desktop sidebar, a mobile drawer and
// the page header. The drawer flag is the only state the shell owns.
type LayoutShell struct {
	Brand      string
	Title      string
	ActivePath string
	CreateMenu []NavigationEntry

	Desktop *NavigationPanel
	Mobile  *NavigationPanel

	mu         sync.RWMutex
	drawerOpen bool
}

// ShellView is the render-ready snapshot of the shell.
type ShellView struct {
	Brand      string               `json:"brand"`
	LogoURL    string               `json:"logo_url,omitempty"`
	Title      string               `json:"title"`
	ActivePath string               `json:"active_path"`
	DrawerOpen bool                 `json:"drawer_open"`
	Navigation NavigationView       `json:"navigation"`
	CreateMenu []NavigationItemView `json:"create_menu"`
}

// NewLayoutShell builds a shell whose mobile panel closes the drawer on selection.
func NewLayoutShell(brand, title, activePath string, nav NavigationConfig) *LayoutShell {
	shell := &LayoutShell{
		Brand:      brand,
		Title:      title,
		ActivePath: activePath,
		CreateMenu: cloneEntries(nav.Create),
	}
	shell.Desktop = &NavigationPanel{
		Primary:   cloneEntries(nav.Primary),
		Secondary: cloneEntries(nav.Secondary),
	}
	shell.Mobile = &NavigationPanel{
		Primary:   cloneEntries(nav.Primary),
		Secondary: cloneEntries(nav.Secondary),
		OnSelect:  func(NavigationEntry) { shell.CloseDrawer() },
	}
	return shell
}

// ToggleDrawer flips the mobile drawer and returns the new state.
func (s *LayoutShell) ToggleDrawer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = !s.drawerOpen
	return s.drawerOpen
}

// OpenDrawer opens the mobile drawer.
func (s *LayoutShell) OpenDrawer() {
	s.mu.Lock()
	s.drawerOpen = true
	s.mu.Unlock()
}

// CloseDrawer closes the mobile drawer; closing a closed drawer is a no-op.
func (s *LayoutShell) CloseDrawer() {
	s.mu.Lock()
	s.drawerOpen = false
	s.mu.Unlock()
}

// DrawerOpen reports the drawer state.
func (s *LayoutShell) DrawerOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawerOpen
}

// Navigate selects an entry from the mobile panel when the drawer is open and
// from the desktop panel otherwise. The active path only changes on success.
func (s *LayoutShell) Navigate(path string) (NavigationEntry, error) {
	panel := s.Desktop
	if s.DrawerOpen() {
		panel = s.Mobile
	}
	entry, err := panel.Select(path)
	if err != nil {
		return NavigationEntry{}, err
	}
	s.mu.Lock()
	s.ActivePath = entry.Path
	s.mu.Unlock()
	return entry, nil
}

// View renders the shell for the given locale.
func (s *LayoutShell) View(ctx context.Context, translator TranslationService, locale string) ShellView {
	s.mu.RLock()
	active := s.ActivePath
	open := s.drawerOpen
	s.mu.RUnlock()

	create := renderEntries(ctx, translator, locale, s.CreateMenu, "")
	return ShellView{
		Brand:      s.Brand,
		Title:      translateOrFallback(ctx, translator, "dashboard.title", locale, s.Title, nil),
		ActivePath: active,
		DrawerOpen: open,
		Navigation: s.Desktop.RenderLocalized(ctx, translator, locale, active),
		CreateMenu: create,
	}
}

func cloneEntries(entries []NavigationEntry) []NavigationEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]NavigationEntry, len(entries))
	copy(out, entries)
	return out
}

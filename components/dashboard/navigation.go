package dashboard

import (
	"context"

	"github.com/ettle/strcase"
)

// NavigationEntry is a single static link in the navigation panel.
type NavigationEntry struct {
	Path  string `json:"path" yaml:"path"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
}

// NavigationPanel renders two groups of entries against the current path.
// OnSelect is declared by the caller; the panel itself has no side effects.
type NavigationPanel struct {
	Primary   []NavigationEntry
	Secondary []NavigationEntry
	OnSelect  func(NavigationEntry)
}

// NavigationItemView is the render-ready form of an entry.
type NavigationItemView struct {
	Path   string `json:"path"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// NavigationView groups rendered entries.
type NavigationView struct {
	Primary   []NavigationItemView `json:"primary"`
	Secondary []NavigationItemView `json:"secondary"`
}

// Render marks an entry active iff its path equals currentPath exactly.
func (p *NavigationPanel) Render(currentPath string) NavigationView {
	return p.RenderLocalized(context.Background(), nil, "", currentPath)
}

// RenderLocalized is Render with labels resolved through the translation service.
func (p *NavigationPanel) RenderLocalized(ctx context.Context, translator TranslationService, locale, currentPath string) NavigationView {
	if p == nil {
		return NavigationView{}
	}
	return NavigationView{
		Primary:   renderEntries(ctx, translator, locale, p.Primary, currentPath),
		Secondary: renderEntries(ctx, translator, locale, p.Secondary, currentPath),
	}
}

// Select resolves path to an entry and invokes OnSelect when set.
func (p *NavigationPanel) Select(path string) (NavigationEntry, error) {
	if p != nil {
		for _, group := range [][]NavigationEntry{p.Primary, p.Secondary} {
			for _, entry := range group {
				if entry.Path != path {
					continue
				}
				if p.OnSelect != nil {
					p.OnSelect(entry)
				}
				return entry, nil
			}
		}
	}
	return NavigationEntry{}, notFoundError(TextCodeUnknownPath, "dashboard: no navigation entry for %q", path)
}

func renderEntries(ctx context.Context, translator TranslationService, locale string, entries []NavigationEntry, currentPath string) []NavigationItemView {
	if len(entries) == 0 {
		return nil
	}
	items := make([]NavigationItemView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, NavigationItemView{
			Path:   entry.Path,
			Label:  translateOrFallback(ctx, translator, navigationKey(entry), locale, entry.Label, nil),
			Icon:   entry.Icon,
			Active: entry.Path == currentPath,
		})
	}
	return items
}

func navigationKey(entry NavigationEntry) string {
	return "dashboard.nav." + strcase.ToSnake(entry.Label)
}

package dashboard

import (
	"context"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Fixed chart colors and labels for the conversion view.
const (
	ColorClosedWon  = "emerald-400"
	ColorClosedLost = "red-400"
	ColorTrendLine  = "indigo-600"

	LabelClosedWon  = "Closed won"
	LabelClosedLost = "Closed lost"
)

// ThemeProvider supplies the named color tokens used by cards and charts. It
// is optional; without one the default palette applies.
type ThemeProvider interface {
	SelectTheme(ctx context.Context, selector ThemeSelector) (*ThemeSelection, error)
}

// ThemeSelector describes the desired theme/variant.
type ThemeSelector struct {
	Name    string
	Variant string
}

// ThemeSelection carries resolved theme details.
type ThemeSelection struct {
	Name       string
	Variant    string
	Tokens     map[string]string
	Assets     ThemeAssets
	ChartTheme string
}

// AssetLogo names the brand logo in ThemeAssets.
const AssetLogo = "logo"

// ThemeAssets provides asset metadata plus optional prefix/resolver.
type ThemeAssets struct {
	Values   map[string]string
	Prefix   string
	Resolver func(string) string
}

// AssetURL resolves the final URL for a named asset (logo, favicon, etc.).
func (assets ThemeAssets) AssetURL(name string) string {
	if len(assets.Values) == 0 {
		return ""
	}
	path := assets.Values[name]
	if path == "" {
		return ""
	}
	if assets.Resolver != nil {
		if resolved := assets.Resolver(path); resolved != "" {
			return resolved
		}
	}
	if assets.Prefix != "" {
		return strings.TrimRight(assets.Prefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	return path
}

// DefaultTheme returns the light palette with the tailwind tokens the
// fixtures reference.
func DefaultTheme() *ThemeSelection {
	return &ThemeSelection{
		Name:       "leads",
		Variant:    "light",
		ChartTheme: types.ThemeWesteros,
		Tokens: map[string]string{
			"red-400":     "#f87171",
			"yellow-400":  "#facc15",
			"amber-400":   "#fbbf24",
			"green-400":   "#4ade80",
			"emerald-400": "#34d399",
			"indigo-500":  "#6366f1",
			"indigo-600":  "#4f46e5",
			"purple-500":  "#a855f7",
			"violet-400":  "#a78bfa",
			"primary":     "#4f46e5",
			"surface":     "#ffffff",
			"muted":       "#6b7280",
		},
	}
}

// StaticThemeProvider always returns the same selection.
type StaticThemeProvider struct {
	Selection *ThemeSelection
}

// SelectTheme implements ThemeProvider.
func (p StaticThemeProvider) SelectTheme(context.Context, ThemeSelector) (*ThemeSelection, error) {
	if p.Selection == nil {
		return DefaultTheme(), nil
	}
	return cloneThemeSelection(p.Selection), nil
}

// Color resolves a token to a CSS color. Hex literals pass through lowercased
// and unknown tokens are returned unchanged.
func (theme *ThemeSelection) Color(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "#") {
		return strings.ToLower(token)
	}
	if theme != nil {
		if value, ok := theme.Tokens[token]; ok && value != "" {
			return value
		}
	}
	return token
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func cloneThemeSelection(selection *ThemeSelection) *ThemeSelection {
	if selection == nil {
		return nil
	}
	cloned := *selection
	if len(selection.Tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(selection.Tokens))
		for key, value := range selection.Tokens {
			cloned.Tokens[key] = value
		}
	}
	if len(selection.Assets.Values) > 0 {
		cloned.Assets.Values = make(map[string]string, len(selection.Assets.Values))
		for key, value := range selection.Assets.Values {
			cloned.Assets.Values[key] = value
		}
	}
	return &cloned
}

// renderEnv carries the per-request collaborators every section view needs.
type renderEnv struct {
	translator TranslationService
	locale     string
	theme      *ThemeSelection
	charts     ChartRenderer
}

func (env renderEnv) translate(ctx context.Context, key, fallback string) string {
	return translateOrFallback(ctx, env.translator, key, env.locale, fallback, nil)
}

func (env renderEnv) color(token string) string {
	return env.theme.Color(token)
}

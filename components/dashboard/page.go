package dashboard

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Page is one mounted dashboard session. Each section owns its own state and
// lock; the page only composes them in display order.
type Page struct {
	ID        string
	Locale    string
	Viewer    ViewerContext
	CreatedAt time.Time

	Shell     *LayoutShell
	Header    *PageHeader
	StatCards []StatCard
	Trend     *TrendChartCard
	Summary   *LostReasonsSummary

	translator TranslationService

	mu       sync.Mutex
	lastSeen time.Time
}

// PageOptions configures NewPage.
type PageOptions struct {
	Source  Source
	Sampler Sampler
	// Path overrides the fixture active path.
	Path   string
	Locale string
	Viewer ViewerContext
	// Translator takes precedence over the fixture translations.
	Translator TranslationService
	Now        func() time.Time
}

// PageView is the render-ready page, sections in display order.
type PageView struct {
	ID        string         `json:"id"`
	Locale    string         `json:"locale"`
	Shell     ShellView      `json:"shell"`
	Header    PageHeaderView `json:"header"`
	StatCards []StatCardView `json:"stat_cards"`
	Trend     TrendChartView `json:"trend"`
	Summary   []FactCardView `json:"summary"`
	ThemeCSS  string         `json:"theme_css,omitempty"`
}

// NewPage loads fixtures from the source and mounts every section. The trend
// card takes its first sample here.
func NewPage(ctx context.Context, opts PageOptions) (*Page, error) {
	if opts.Source == nil {
		return nil, validationError(TextCodeInvalidFixture, "dashboard: page requires a fixture source")
	}
	fixtures, err := opts.Source.Fixtures(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "dashboard: load fixtures").
			WithTextCode(TextCodeSourceFailed)
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = NewJitterSampler(opts.Source)
	}
	for _, card := range fixtures.StatCards {
		if err := card.Validate(); err != nil {
			return nil, err
		}
	}
	trend, err := NewTrendChartCard(ctx, fixtures.Trend, sampler)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	activePath := fixtures.ActivePath
	if opts.Path != "" {
		activePath = opts.Path
	}
	var translator TranslationService = CatalogTranslator{Messages: fixtures.Translations}
	if opts.Translator != nil {
		translator = TranslatorChain{opts.Translator, translator}
	}
	created := now()
	return &Page{
		ID:         uuid.NewString(),
		Locale:     normalizeLocale(opts.Locale),
		Viewer:     opts.Viewer,
		CreatedAt:  created,
		Shell:      NewLayoutShell(fixtures.Brand, fixtures.Title, activePath, fixtures.Navigation),
		Header:     NewPageHeader(fixtures.Header),
		StatCards:  cloneStatCards(fixtures.StatCards),
		Trend:      trend,
		Summary:    &LostReasonsSummary{Cards: cloneFactCards(fixtures.Summary)},
		translator: translator,
		lastSeen:   created,
	}, nil
}

// Touch records activity on the page.
func (p *Page) Touch(at time.Time) {
	p.mu.Lock()
	p.lastSeen = at
	p.mu.Unlock()
}

// LastSeen reports the last Touch.
func (p *Page) LastSeen() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen
}

// View renders every section.
func (p *Page) View(ctx context.Context, theme *ThemeSelection, charts ChartRenderer) (PageView, error) {
	env := p.env(theme, charts)
	cards, err := p.statCardsView(ctx, env)
	if err != nil {
		return PageView{}, err
	}
	trend, err := p.Trend.view(ctx, env)
	if err != nil {
		return PageView{}, err
	}
	return PageView{
		ID:        p.ID,
		Locale:    p.Locale,
		Shell:     p.shellView(ctx, env),
		Header:    p.Header.View(),
		StatCards: cards,
		Trend:     trend,
		Summary:   p.Summary.view(ctx, env),
		ThemeCSS:  env.theme.CSSVariablesInline(),
	}, nil
}

// SectionView renders one section. The result is the matching field type of PageView.
func (p *Page) SectionView(ctx context.Context, section Section, theme *ThemeSelection, charts ChartRenderer) (any, error) {
	env := p.env(theme, charts)
	switch section {
	case SectionShell:
		return p.shellView(ctx, env), nil
	case SectionHeader:
		return p.Header.View(), nil
	case SectionStatCards:
		return p.statCardsView(ctx, env)
	case SectionTrend:
		return p.Trend.view(ctx, env)
	case SectionSummary:
		return p.Summary.view(ctx, env), nil
	default:
		return nil, notFoundError(TextCodeUnknownSection, "dashboard: unknown section %q", section)
	}
}

func (p *Page) shellView(ctx context.Context, env renderEnv) ShellView {
	view := p.Shell.View(ctx, p.translator, p.Locale)
	view.LogoURL = env.theme.Assets.AssetURL(AssetLogo)
	return view
}

func (p *Page) statCardsView(ctx context.Context, env renderEnv) ([]StatCardView, error) {
	views := make([]StatCardView, 0, len(p.StatCards))
	for _, card := range p.StatCards {
		view, err := card.view(ctx, env)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (p *Page) env(theme *ThemeSelection, charts ChartRenderer) renderEnv {
	if theme == nil {
		theme = DefaultTheme()
	}
	return renderEnv{
		translator: p.translator,
		locale:     p.Locale,
		theme:      theme,
		charts:     charts,
	}
}

package main

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"strings"

	"github.com/ettle/strcase"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
)

type renderCmd struct {
	Format   string `enum:"html,json" default:"html" help:"Output format."`
	Section  string `help:"Render one section (shell, header, stat-cards, trend, summary)."`
	Locale   string `help:"Locale used for labels and number formatting."`
	Path     string `help:"Active navigation path."`
	Tab      string `help:"Header tab token."`
	Range    string `name:"range" help:"Header date range token."`
	Metric   string `help:"Trend metric (leadVolume, conversion, dealSize)."`
	Window   string `help:"Trend range token."`
	Seed     int64  `help:"Seed for the trend jitter; 0 uses a random seed."`
	BasePath string `name:"base-path" default:"/dashboard" help:"Base path baked into rendered links."`
	Out      string `short:"o" type:"path" help:"Write to a file instead of stdout."`

	Source SourceFlags `embed:""`
	Charts ChartFlags  `embed:""`

	stdout io.Writer
}

func (c *renderCmd) Run(ctx context.Context, root *cli) error {
	logger, err := newLogger(root)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, err := c.Source.load(dashboard.NewJSONSchemaValidator())
	if err != nil {
		return err
	}
	charts, _ := c.Charts.build()
	opts := serviceOptions(logger, source, charts)
	if c.Seed != 0 {
		seed := c.Seed
		opts.SamplerFactory = func(src dashboard.Source) dashboard.Sampler {
			return dashboard.NewJitterSampler(src, dashboard.WithRandSource(rand.NewSource(seed)))
		}
	}
	service := dashboard.NewService(opts)

	page, err := service.Mount(ctx, dashboard.MountRequest{Path: c.Path, Locale: c.Locale})
	if err != nil {
		return err
	}
	defer func() { _ = service.Close(context.Background(), page.ID) }()
	if err := c.applySelections(ctx, service, page.ID); err != nil {
		return err
	}

	out, closeFn, err := openOutput(c.Out, c.stdout)
	if err != nil {
		return err
	}
	defer closeFn()

	section, err := c.section()
	if err != nil {
		return err
	}
	if c.Format == "json" {
		return c.writeJSON(ctx, out, service, page.ID, section)
	}
	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return err
	}
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		BasePath: c.BasePath,
	})
	if section == "" {
		return controller.RenderTemplate(ctx, page.ID, out)
	}
	return controller.RenderSection(ctx, page.ID, section, out)
}

func (c *renderCmd) applySelections(ctx context.Context, service *dashboard.Service, pageID string) error {
	if c.Tab != "" {
		if _, err := service.SelectTab(ctx, pageID, c.Tab); err != nil {
			return err
		}
	}
	if c.Range != "" {
		if _, err := service.SelectHeaderRange(ctx, pageID, c.Range); err != nil {
			return err
		}
	}
	if c.Metric != "" {
		if _, err := service.SelectChartMetric(ctx, pageID, c.Metric); err != nil {
			return err
		}
	}
	if c.Window != "" {
		if _, err := service.SelectChartRange(ctx, pageID, c.Window); err != nil {
			return err
		}
	}
	return nil
}

// section accepts kebab, camel or snake spellings of a section name.
func (c *renderCmd) section() (dashboard.Section, error) {
	raw := strings.TrimSpace(c.Section)
	if raw == "" {
		return "", nil
	}
	return dashboard.ParseSection(strcase.ToSnake(raw))
}

func (c *renderCmd) writeJSON(ctx context.Context, out io.Writer, service *dashboard.Service, pageID string, section dashboard.Section) error {
	var (
		payload any
		err     error
	)
	if section == "" {
		payload, err = service.View(ctx, pageID)
	} else {
		payload, err = service.SectionView(ctx, pageID, section)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

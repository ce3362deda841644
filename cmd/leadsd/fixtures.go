package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
)

type fixturesCmd struct {
	Validate validateFixturesCmd `cmd:"" help:"Validate a fixture manifest against its schema."`
	Dump     dumpFixturesCmd     `cmd:"" help:"Print the built-in fixtures as a YAML manifest."`
}

type validateFixturesCmd struct {
	Path string `arg:"" type:"existingfile" help:"Manifest to validate."`

	stdout io.Writer
}

func (c *validateFixturesCmd) Run(_ context.Context) error {
	doc, err := dashboard.ReadManifest(c.Path, dashboard.NewJSONSchemaValidator())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writerOr(c.stdout), "%s: ok (%d stat cards, %d nav entries)\n",
		c.Path, len(doc.Fixtures.StatCards), len(doc.Fixtures.Navigation.Primary)+len(doc.Fixtures.Navigation.Secondary))
	return err
}

type dumpFixturesCmd struct {
	Name string `default:"leads-dashboard" help:"Manifest name."`
	Out  string `short:"o" type:"path" help:"Write to a file instead of stdout."`

	stdout io.Writer
}

func (c *dumpFixturesCmd) Run(_ context.Context) error {
	out, closeFn, err := openOutput(c.Out, c.stdout)
	if err != nil {
		return err
	}
	defer closeFn()
	return dashboard.EncodeManifest(out, c.Name, dashboard.DefaultFixtures())
}

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func openOutput(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return writerOr(fallback), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("leadsd: create %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

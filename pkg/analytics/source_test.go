package analytics

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-leads-dashboard/components/dashboard"
)

func TestSourceUsesClient(t *testing.T) {
	fixtures := dashboard.DefaultFixtures()
	fixtures.Brand = "Remote Co"
	client := NewMockClient(MockData{Fixtures: fixtures})
	source := NewSource(client, nil)

	got, err := source.Fixtures(context.Background())
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if got.Brand != "Remote Co" {
		t.Fatalf("expected remote brand, got %q", got.Brand)
	}
	if _, err := source.TrendBaseline(context.Background()); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if client.Calls() != 2 {
		t.Fatalf("expected 2 calls, got %d", client.Calls())
	}
}

func TestSourceFallsBackOnError(t *testing.T) {
	client := NewMockClient(MockData{Err: errors.New("offline")})
	source := NewSource(client, dashboard.NewStaticSource(dashboard.DefaultFixtures()))

	got, err := source.Fixtures(context.Background())
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if got.Brand != dashboard.DefaultBrand {
		t.Fatalf("expected fallback brand, got %q", got.Brand)
	}
}

func TestSourceFallsBackOnInvalidFixtures(t *testing.T) {
	fixtures := dashboard.DefaultFixtures()
	fixtures.Brand = "Remote Co"
	fixtures.StatCards[0].Funnel = nil
	client := NewMockClient(MockData{Fixtures: fixtures})
	source := NewSource(client, dashboard.NewStaticSource(dashboard.DefaultFixtures()),
		WithValidator(dashboard.NewJSONSchemaValidator()))

	got, err := source.Fixtures(context.Background())
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if got.Brand != dashboard.DefaultBrand {
		t.Fatalf("expected fallback brand, got %q", got.Brand)
	}

	noFallback := NewSource(client, nil)
	if _, err := noFallback.Fixtures(context.Background()); err == nil {
		t.Fatalf("expected invalid fixtures to surface without a fallback")
	}
}

func TestSourceWithoutFallbackSurfacesError(t *testing.T) {
	client := NewMockClient(MockData{Fixtures: dashboard.DefaultFixtures()})
	client.SetError(errors.New("offline"))
	source := NewSource(client, nil)

	if _, err := source.TrendBaseline(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestServiceMountsFromRemoteSource(t *testing.T) {
	fixtures := dashboard.DefaultFixtures()
	fixtures.Title = "Remote pipeline"
	service := dashboard.NewService(dashboard.Options{
		Source: NewSource(NewMockClient(MockData{Fixtures: fixtures}), nil),
	})

	page, err := service.Mount(context.Background(), dashboard.MountRequest{})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if page.Shell.Title != "Remote pipeline" {
		t.Fatalf("expected remote title, got %q", page.Shell.Title)
	}
}

package dashboard

import (
	"context"
	"errors"
)

// LoadSource builds the static fixture source. An empty path serves the
// built-in defaults; otherwise the manifest at path is read and validated.
func LoadSource(path string, validator ManifestValidator) (*StaticSource, error) {
	if path == "" {
		return NewStaticSource(DefaultFixtures()), nil
	}
	doc, err := ReadManifest(path, validator)
	if err != nil {
		return nil, err
	}
	return NewStaticSource(doc.Fixtures), nil
}

// ReloadSource re-reads the manifest into an existing source. On error the
// source keeps serving what it had.
func ReloadSource(source *StaticSource, path string, validator ManifestValidator) error {
	if source == nil {
		return errors.New("dashboard: source is required to reload fixtures")
	}
	if path == "" {
		source.Replace(DefaultFixtures())
		return nil
	}
	doc, err := ReadManifest(path, validator)
	if err != nil {
		return err
	}
	source.Replace(doc.Fixtures)
	return nil
}

// WarmCharts renders one unmounted page per locale so the chart cache is hot
// before the first request. No session is stored.
func WarmCharts(ctx context.Context, service *Service, locales ...string) error {
	if service == nil {
		return errors.New("dashboard: service is required to warm charts")
	}
	if len(locales) == 0 {
		locales = []string{""}
	}
	var warmErr error
	for _, locale := range locales {
		if _, err := service.Preview(ctx, MountRequest{Locale: locale}); err != nil {
			warmErr = errors.Join(warmErr, err)
		}
	}
	return warmErr
}

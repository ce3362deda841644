package dashboard

import (
	"context"
	"strings"
)

// TranslationService resolves display labels (navigation, card titles, legends)
// for the viewer locale. Missing keys fall back to the literal label.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`es-mx`) automatically fall back to their
// base language (`es`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	candidates := localeCandidates(locale)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	if value, ok := values["default"]; ok && value != "" {
		return value
	}
	return fallback
}

// CatalogTranslator serves translations from an in-memory catalog keyed by
// message key, then locale. A "default" locale entry acts as the fallback.
type CatalogTranslator struct {
	Messages map[string]map[string]string
}

// Translate implements TranslationService.
func (c CatalogTranslator) Translate(_ context.Context, key, locale string, _ map[string]any) (string, error) {
	if value := ResolveLocalizedValue(c.Messages[key], locale, ""); value != "" {
		return value, nil
	}
	return "", notFoundError("TRANSLATION_NOT_FOUND", "dashboard: no translation for %q in %q", key, locale)
}

// TranslatorChain asks each service in turn and returns the first hit.
type TranslatorChain []TranslationService

// Translate implements TranslationService.
func (c TranslatorChain) Translate(ctx context.Context, key, locale string, args map[string]any) (string, error) {
	for _, svc := range c {
		if svc == nil {
			continue
		}
		if value, err := svc.Translate(ctx, key, locale, args); err == nil && value != "" {
			return value, nil
		}
	}
	return "", notFoundError("TRANSLATION_NOT_FOUND", "dashboard: no translation for %q in %q", key, locale)
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	candidates = append(candidates, "default")
	return candidates
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}

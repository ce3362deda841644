package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
)

// Headers read by ResolveViewer. An upstream auth proxy is expected to set them.
const (
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Tenant-ID"
)

// ResolveViewer builds the viewer from identity headers and the locale hints
// (?locale= first, then Accept-Language).
func ResolveViewer(r *http.Request) dashboard.ViewerContext {
	return dashboard.ViewerContext{
		UserID:   strings.TrimSpace(r.Header.Get(HeaderUserID)),
		TenantID: strings.TrimSpace(r.Header.Get(HeaderTenantID)),
		Locale:   RequestLocale(r.URL.Query().Get("locale"), r.Header.Get("Accept-Language")),
	}
}

// RequestLocale picks the explicit locale, falling back to the highest
// weighted Accept-Language tag. It returns "" when neither is usable.
func RequestLocale(explicit, acceptLanguage string) string {
	if locale := strings.TrimSpace(explicit); locale != "" {
		return strings.ToLower(locale)
	}
	if acceptLanguage == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}
	base, _ := tags[0].Base()
	return base.String()
}

package dashboard

import (
	"os"
	"strings"
)

const (
	// DefaultEChartsAssetsHost is the public go-echarts asset bucket.
	DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// EnvEChartsCDN overrides the assets host (e.g., to point at a self-hosted bucket).
	EnvEChartsCDN = "LEADS_ECHARTS_CDN"
)

// EChartsAssetsHost returns the assets host, respecting LEADS_ECHARTS_CDN if set.
func EChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(EnvEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsAssetsHost
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}

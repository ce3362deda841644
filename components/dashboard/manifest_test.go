package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
version: "1"
name: regional
fixtures:
  brand: LeadsCo EU
  navigation:
    primary:
      - {path: /dashboard, label: Dashboard, icon: LayoutGrid}
      - {path: /leads, label: Leads, icon: Users}
  header:
    tabs:
      - {label: Sales, token: sales}
      - {label: Leads, token: leads}
    default_tab: sales
    ranges:
      - {label: Today, token: today}
    default_range: 0
  stat_cards:
    - kind: breakdown
      code: sources
      title: Sources
      breakdown:
        slices:
          - {name: Clutch, value: 10, amount: 1000, color: red-400}
  trend:
    title: Leads tracking
    ranges:
      - {label: Year to date, token: ytd}
    baseline:
      lead_volume:
        - {period: Jan, lead_count: 10}
  summary:
    - code: other_data
      title: Other data
      facts:
        - {value: "3", label: inactive leads, explanation: quiet for a month}
  translations:
    dashboard.title:
      es: Tablero
`

func TestDecodeManifest(t *testing.T) {
	t.Parallel()
	doc, err := DecodeManifest(strings.NewReader(sampleManifest), NewJSONSchemaValidator())
	require.NoError(t, err)

	fx := doc.Fixtures
	assert.Equal(t, "LeadsCo EU", fx.Brand)
	assert.Equal(t, DefaultPageTitle, fx.Title)
	assert.Equal(t, DefaultActivePath, fx.ActivePath)
	assert.Equal(t, MetricConversion, fx.Trend.DefaultMetric)
	require.Len(t, fx.StatCards, 1)
	require.NotNil(t, fx.StatCards[0].Breakdown)
	require.NotNil(t, fx.StatCards[0].Breakdown.Slices[0].Amount)
	assert.Nil(t, fx.StatCards[0].Breakdown.Slices[0].Percentage)
	assert.Equal(t, 1000.0, *fx.StatCards[0].Breakdown.Slices[0].Amount)
	assert.Equal(t, "Tablero", fx.Translations["dashboard.title"]["es"])
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := DecodeManifest(strings.NewReader("version: \"1\"\nfixtures:\n  colour: blue\n"), nil)
	require.Error(t, err)
	assert.True(t, goerrors.IsValidation(err))
}

func TestDecodeManifestEmpty(t *testing.T) {
	t.Parallel()
	_, err := DecodeManifest(strings.NewReader(""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest is empty")
}

func TestDecodeManifestSchemaViolations(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"negative sample": "version: \"1\"\nfixtures:\n  trend:\n    baseline:\n      deal_size:\n        - {period: Mar, total_deal_size: -1}\n",
		"relative path":   "version: \"1\"\nfixtures:\n  navigation:\n    primary:\n      - {path: leads, label: Leads}\n",
		"unknown kind":    "version: \"1\"\nfixtures:\n  stat_cards:\n    - {kind: gauge, code: g, title: G}\n",
		"bad version":     "version: \"2\"\nfixtures: {}\n",
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeManifest(strings.NewReader(body), NewJSONSchemaValidator())
			require.Error(t, err)
			assert.True(t, goerrors.IsValidation(err))
		})
	}
}

func TestManifestValidateCrossFieldRules(t *testing.T) {
	t.Parallel()
	doc := FixtureManifest{Version: ManifestVersion, Fixtures: DefaultFixtures()}
	require.NoError(t, doc.Validate())

	doc.Fixtures.Header.DefaultRange = 9
	assert.Error(t, doc.Validate())

	doc = FixtureManifest{Version: ManifestVersion, Fixtures: DefaultFixtures()}
	doc.Fixtures.StatCards = append(doc.Fixtures.StatCards, doc.Fixtures.StatCards[0])
	assert.Error(t, doc.Validate())

	doc = FixtureManifest{Version: ManifestVersion, Fixtures: DefaultFixtures()}
	doc.Fixtures.Trend.Metrics = append(doc.Fixtures.Trend.Metrics, MetricButton{Metric: "revenue"})
	assert.Error(t, doc.Validate())
}

func TestManifestRoundTripThroughFile(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, EncodeManifest(&buf, "defaults", DefaultFixtures()))

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	doc, err := ReadManifest(path, NewJSONSchemaValidator())
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, "defaults", doc.Name)
	assert.Equal(t, DefaultFixtures().Trend.Baseline, doc.Fixtures.Trend.Baseline)
	assert.Equal(t, DefaultStatCards(), doc.Fixtures.StatCards)
}

func TestReadManifestMissingFile(t *testing.T) {
	t.Parallel()
	_, err := ReadManifest(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

package dashboard

const (
	DefaultBrand      = "LeadsCo"
	DefaultPageTitle  = "Dashboard"
	DefaultActivePath = "/dashboard"
)

// Fixtures is every static value the page is composed from. A Source serves
// them; the defaults below are the built-in set.
type Fixtures struct {
	Brand        string                       `json:"brand" yaml:"brand"`
	Title        string                       `json:"title" yaml:"title"`
	ActivePath   string                       `json:"active_path" yaml:"active_path"`
	Navigation   NavigationConfig             `json:"navigation" yaml:"navigation"`
	Header       HeaderConfig                 `json:"header" yaml:"header"`
	StatCards    []StatCard                   `json:"stat_cards" yaml:"stat_cards"`
	Trend        TrendConfig                  `json:"trend" yaml:"trend"`
	Summary      []FactCard                   `json:"summary" yaml:"summary"`
	Translations map[string]map[string]string `json:"translations,omitempty" yaml:"translations,omitempty"`
}

// NavigationConfig groups the sidebar links and the header create menu.
type NavigationConfig struct {
	Primary   []NavigationEntry `json:"primary" yaml:"primary"`
	Secondary []NavigationEntry `json:"secondary" yaml:"secondary"`
	Create    []NavigationEntry `json:"create,omitempty" yaml:"create,omitempty"`
}

// HeaderConfig configures the page header controls.
type HeaderConfig struct {
	Tabs         []Option `json:"tabs" yaml:"tabs"`
	DefaultTab   string   `json:"default_tab" yaml:"default_tab"`
	Ranges       []Option `json:"ranges" yaml:"ranges"`
	DefaultRange int      `json:"default_range" yaml:"default_range"`
}

// TrendConfig configures the trend chart card.
type TrendConfig struct {
	Title         string         `json:"title" yaml:"title"`
	Summary       []TrendSummary `json:"summary" yaml:"summary"`
	Metrics       []MetricButton `json:"metrics" yaml:"metrics"`
	DefaultMetric TrendMetric    `json:"default_metric" yaml:"default_metric"`
	Ranges        []Option       `json:"ranges" yaml:"ranges"`
	DefaultRange  int            `json:"default_range" yaml:"default_range"`
	Baseline      TrendBaseline  `json:"baseline" yaml:"baseline"`
}

// DefaultFixtures returns a fresh copy of the built-in fixture set.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Brand:      DefaultBrand,
		Title:      DefaultPageTitle,
		ActivePath: DefaultActivePath,
		Navigation: DefaultNavigation(),
		Header:     DefaultHeaderConfig(),
		StatCards:  DefaultStatCards(),
		Trend:      DefaultTrendConfig(),
		Summary:    DefaultSummaryCards(),
	}
}

func DefaultNavigation() NavigationConfig {
	return NavigationConfig{
		Primary:   DefaultPrimaryNavigation(),
		Secondary: DefaultSecondaryNavigation(),
		Create: []NavigationEntry{
			{Path: "/leads/new", Label: "New Lead", Icon: "UserPlus"},
			{Path: "/customers/new", Label: "New Customer", Icon: "User"},
			{Path: "/proposals/new", Label: "New Proposal", Icon: "FileText"},
			{Path: "/invoices/new", Label: "New Invoice", Icon: "FileSpreadsheet"},
		},
	}
}

func DefaultPrimaryNavigation() []NavigationEntry {
	return []NavigationEntry{
		{Path: "/dashboard", Label: "Dashboard", Icon: "LayoutGrid"},
		{Path: "/leads", Label: "Leads", Icon: "Users"},
		{Path: "/customers", Label: "Customers", Icon: "User"},
		{Path: "/proposals", Label: "Proposals", Icon: "FileText"},
		{Path: "/invoices", Label: "Invoices", Icon: "FileSpreadsheet"},
		{Path: "/items", Label: "Items", Icon: "ShoppingCart"},
		{Path: "/mail", Label: "Mail", Icon: "Mail"},
		{Path: "/shoebox", Label: "Shoebox", Icon: "Archive"},
		{Path: "/calendar", Label: "Calendar", Icon: "CalendarDays"},
	}
}

func DefaultSecondaryNavigation() []NavigationEntry {
	return []NavigationEntry{
		{Path: "/help", Label: "Help", Icon: "HelpCircle"},
		{Path: "/settings", Label: "Settings", Icon: "Settings"},
		{Path: "/support", Label: "Support", Icon: "HelpCircle"},
	}
}

func DefaultHeaderConfig() HeaderConfig {
	return HeaderConfig{
		Tabs: []Option{
			{Label: "Sales", Token: TabSales},
			{Label: "Leads", Token: TabLeads},
		},
		DefaultTab:   TabLeads,
		Ranges:       DefaultHeaderRanges(),
		DefaultRange: 3,
	}
}

func DefaultHeaderRanges() []Option {
	return []Option{
		{Label: "Today", Token: "today"},
		{Label: "Last 7 days", Token: "last_7_days"},
		{Label: "Last 30 days", Token: "last_30_days"},
		{Label: "Last 6 months", Token: "last_6_months"},
		{Label: "Last 12 months", Token: "last_12_months"},
	}
}

func DefaultChartRanges() []Option {
	return []Option{
		{Label: "Last 3 months", Token: "last_3_months"},
		{Label: "Last 6 months", Token: "last_6_months"},
		{Label: "Last 12 months", Token: "last_12_months"},
		{Label: "Year to date", Token: "ytd"},
	}
}

func DefaultTrendConfig() TrendConfig {
	return TrendConfig{
		Title: "Leads tracking",
		Summary: []TrendSummary{
			{Value: "680", Label: "total closed"},
			{Value: "70", Label: "total lost"},
		},
		Metrics: []MetricButton{
			{Metric: MetricLeadVolume, Label: "Leads came"},
			{Metric: MetricConversion, Label: "Leads Converted"},
			{Metric: MetricDealSize, Label: "Total deals size"},
		},
		DefaultMetric: MetricConversion,
		Ranges:        DefaultChartRanges(),
		DefaultRange:  1,
		Baseline:      DefaultTrendBaseline(),
	}
}

func DefaultTrendBaseline() TrendBaseline {
	return TrendBaseline{
		Conversion: []ConversionSample{
			{Period: "Mar", ClosedWon: 65, ClosedLost: 58},
			{Period: "Apr", ClosedWon: 40, ClosedLost: 30},
			{Period: "May", ClosedWon: 82, ClosedLost: 45},
			{Period: "Jun", ClosedWon: 65, ClosedLost: 5},
			{Period: "Jul", ClosedWon: 78, ClosedLost: 40},
			{Period: "Aug", ClosedWon: 30, ClosedLost: 95},
		},
		LeadVolume: []LeadVolumeSample{
			{Period: "Mar", LeadCount: 120},
			{Period: "Apr", LeadCount: 150},
			{Period: "May", LeadCount: 130},
			{Period: "Jun", LeadCount: 180},
			{Period: "Jul", LeadCount: 160},
			{Period: "Aug", LeadCount: 200},
		},
		DealSize: []DealSizeSample{
			{Period: "Mar", TotalDealSize: 35000},
			{Period: "Apr", TotalDealSize: 28000},
			{Period: "May", TotalDealSize: 42000},
			{Period: "Jun", TotalDealSize: 30000},
			{Period: "Jul", TotalDealSize: 45000},
			{Period: "Aug", TotalDealSize: 32000},
		},
	}
}

func DefaultFunnelCard() FunnelCard {
	return FunnelCard{
		MainStat:      "600",
		MainStatLabel: "active leads",
		Stages: []FunnelStage{
			{Name: "Discovery", Count: 200, Budget: 200, DurationLabel: "2 days", ColorToken: "red-400"},
			{Name: "Qualified", Count: 100, Budget: 100, DurationLabel: "2 days", ColorToken: "yellow-400"},
			{
				Name:          "In conversation",
				Count:         50,
				Budget:        100,
				DurationLabel: "average time on this stage",
				ColorToken:    "indigo-500",
				Explanation:   "Average time on this stage",
			},
			{Name: "Negotiations", Count: 20, Budget: 50, DurationLabel: "8 days", ColorToken: "green-400"},
			{Name: "Closed won", Count: 20, Budget: 50, DurationLabel: "10 days", ColorToken: "purple-500"},
		},
	}
}

func DefaultBreakdownCard() BreakdownCard {
	return BreakdownCard{
		Slices: []PieSlice{
			{Name: "Clutch", Value: 3000, Percentage: Float(50), ColorToken: "#F87171"},
			{Name: "Behance", Value: 1000, Percentage: Float(40), ColorToken: "#FBBF24"},
			{Name: "Instagram", Value: 1000, Percentage: Float(10), ColorToken: "#34D399"},
			{Name: "Dribbble", Value: 1000, Percentage: Float(10), ColorToken: "#A78BFA"},
		},
	}
}

func DefaultStatCards() []StatCard {
	funnel := DefaultFunnelCard()
	breakdown := DefaultBreakdownCard()
	return []StatCard{
		{Kind: StatCardFunnel, Code: "funnel_count", Title: "Funnel count", Funnel: &funnel},
		{Kind: StatCardBreakdown, Code: "sources", Title: "Sources", FooterNote: "from leads total", Breakdown: &breakdown},
	}
}

func DefaultSummaryCards() []FactCard {
	return []FactCard{
		{
			Code:  "reasons_lost",
			Title: "Reasons of leads lost",
			Facts: []Fact{
				{Value: "40%", Label: "The proposal is unclear"},
				{Value: "20%", Label: "However venture pursuit"},
				{Value: "10%", Label: "Other"},
				{Value: "30%", Label: "The proposal is unclear"},
			},
		},
		{
			Code:  "other_data",
			Title: "Other data",
			Facts: []Fact{
				{Value: "900", Label: "total leads count"},
				{Value: "12", Label: "days in average to convert lead"},
				{
					Value:       "30",
					Label:       "inactive leads",
					Explanation: "Inactive leads are those that have not shown activity in the last 30 days.",
				},
			},
		},
	}
}

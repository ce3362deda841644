package dashboard

// Header tab tokens.
const (
	TabSales = "sales"
	TabLeads = "leads"
)

// PageHeader carries two independent controls. Neither one feeds any other
// section: changing them only updates their own selection.
type PageHeader struct {
	Tabs  *Selector
	Range *Selector
}

// PageHeaderView is the render-ready header.
type PageHeaderView struct {
	Tabs  SelectorView `json:"tabs"`
	Range SelectorView `json:"range"`
}

// NewPageHeader builds the header with its default tab and range.
func NewPageHeader(cfg HeaderConfig) *PageHeader {
	tabIndex := 0
	for i, tab := range cfg.Tabs {
		if tab.Token == cfg.DefaultTab {
			tabIndex = i
		}
	}
	return &PageHeader{
		Tabs:  NewSelector(cfg.Tabs, tabIndex),
		Range: NewSelector(cfg.Ranges, cfg.DefaultRange),
	}
}

// SelectTab switches the active tab.
func (h *PageHeader) SelectTab(token string) (bool, error) {
	return h.Tabs.Select(token)
}

// SelectRange switches the header date range.
func (h *PageHeader) SelectRange(token string) (bool, error) {
	return h.Range.Select(token)
}

// View renders the header.
func (h *PageHeader) View() PageHeaderView {
	return PageHeaderView{Tabs: h.Tabs.View(), Range: h.Range.View()}
}

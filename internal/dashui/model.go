// Package dashui provides the Bubble Tea dashboard interface.
package dashui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anshulguptads/Executive-Command-Center/internal/analytics"
	"github.com/anshulguptads/Executive-Command-Center/internal/dataset"
	"github.com/anshulguptads/Executive-Command-Center/internal/model"
)

const (
	tabOverview = iota
	tabSalesOps
	tabPersonas
	tabAlerts
)

const (
	inputStart = iota
	inputEnd
	inputRegions
	inputStores
	inputCategories
	inputSegments
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FBF7F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Options configures the dashboard model.
type Options struct {
	Spec       model.FilterSpec
	Alerts     analytics.AlertConfig
	PlotHeight int
	ExportDir  string
}

// Model implements the Bubble Tea dashboard. The two datasets are
// immutable for the lifetime of the session; every filter change
// recomputes a fresh snapshot.
type Model struct {
	sales    []model.SalesRecord
	personas []model.PersonaRecord
	alerts   analytics.AlertConfig

	spec model.FilterSpec
	snap analytics.Snapshot

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	personaTable table.Model

	width      int
	height     int
	plotHeight int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	exportDir string
	statusMsg string
	errMsg    string
}

// NewModel constructs the dashboard model and computes the initial
// snapshot.
func NewModel(sales []model.SalesRecord, personas []model.PersonaRecord, opts Options) *Model {
	m := &Model{
		sales:      sales,
		personas:   personas,
		alerts:     opts.Alerts,
		spec:       opts.Spec,
		plotHeight: opts.PlotHeight,
		exportDir:  opts.ExportDir,
		tabs:       []string{"Overview", "Sales Ops", "Personas", "Alerts"},
	}
	if m.plotHeight <= 0 {
		m.plotHeight = 10
	}
	if m.exportDir == "" {
		m.exportDir = "."
	}
	m.initInputs()
	m.initViewports()
	m.initPersonaTable()
	m.refreshSnapshot()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "e":
			m.statusMsg, m.errMsg = m.exportViews()
			return m, nil
		case "g", "home":
			if m.activeTab == tabPersonas {
				m.personaTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabPersonas {
				m.personaTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabPersonas {
				var cmd tea.Cmd
				m.personaTable, cmd = m.personaTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Start (YYYY-MM-DD): "),
		newFilterInput("End (YYYY-MM-DD): "),
		newFilterInput("Regions: "),
		newFilterInput("Stores: "),
		newFilterInput("Categories: "),
		newFilterInput("Segments: "),
	}
	m.setInputsFromSpec()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromSpec() {
	m.filterInputs[inputStart].SetValue(formatBound(m.spec.Start))
	m.filterInputs[inputEnd].SetValue(formatBound(m.spec.End))
	m.filterInputs[inputRegions].SetValue(strings.Join(m.spec.Regions, ", "))
	m.filterInputs[inputStores].SetValue(strings.Join(m.spec.Stores, ", "))
	m.filterInputs[inputCategories].SetValue(strings.Join(m.spec.Categories, ", "))
	m.filterInputs[inputSegments].SetValue(strings.Join(m.spec.Segments, ", "))
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func (m *Model) initPersonaTable() {
	m.personaTable = table.New(
		table.WithColumns(personaColumns()),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	m.personaTable.SetStyles(styles)
}

func personaColumns() []table.Column {
	return []table.Column{
		{Title: "Customer", Width: 10},
		{Title: "Name", Width: 18},
		{Title: "City", Width: 12},
		{Title: "Segment", Width: 9},
		{Title: "Avg Spend", Width: 10},
		{Title: "Visits", Width: 7},
		{Title: "Basket", Width: 7},
		{Title: "Preference", Width: 12},
		{Title: "Engagement", Width: 11},
		{Title: "Last Visit", Width: 10},
	}
}

func personaRows(view []model.PersonaRecord) []table.Row {
	rows := make([]table.Row, 0, len(view))
	for _, rec := range view {
		lastVisit := "-"
		if rec.LastVisitValid {
			lastVisit = rec.LastVisit.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			rec.CustomerID,
			rec.Name,
			rec.City,
			rec.LoyaltySegment,
			fmt.Sprintf("%.2f", rec.AvgSpendAED),
			fmt.Sprintf("%.2f", rec.VisitFrequency),
			fmt.Sprintf("%.2f", rec.TypicalBasketSize),
			rec.CategoryPreference,
			rec.AppEngagement,
			lastVisit,
		})
	}
	return rows
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && (m.errMsg != "" || m.statusMsg != "") {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.personaTable.SetWidth(m.width)
	m.personaTable.SetHeight(maxInt(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabPersonas {
		m.personaTable.Focus()
	} else {
		m.personaTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Filters: %s  regions=%s  stores=%s  categories=%s  segments=%s  |  %d sales rows, %d personas",
		dateRangeLabel(m.spec.Start, m.spec.End),
		setLabel(m.spec.Regions),
		setLabel(m.spec.Stores),
		setLabel(m.spec.Categories),
		setLabel(m.spec.Segments),
		len(m.snap.SalesView),
		len(m.snap.PersonaView))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func dateRangeLabel(start, end *time.Time) string {
	if start == nil && end == nil {
		return "all dates"
	}
	return formatBoundLabel(start) + ".." + formatBoundLabel(end)
}

func formatBoundLabel(t *time.Time) string {
	if t == nil {
		return "*"
	}
	return t.Format("2006-01-02")
}

func setLabel(values []string) string {
	if len(values) == 0 {
		return "all"
	}
	return strings.Join(values, ",")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Filters: /  Export: e  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	if m.statusMsg != "" {
		return help + "\n" + statusStyle.Render(m.statusMsg)
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel; blank list = all)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabPersonas {
		if len(m.snap.PersonaView) == 0 {
			return fitLines("No persona data for the selected filters.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.personaTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshSnapshot() {
	m.snap = analytics.BuildSnapshot(m.sales, m.personas, m.spec, m.alerts)
	m.personaTable.SetRows(personaRows(m.snap.PersonaView))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	m.viewports[tabSalesOps].SetContent(m.renderSalesOps())
	m.viewports[tabAlerts].SetContent(m.renderAlerts())
}

func (m *Model) renderOverview(width int) string {
	if len(m.snap.SalesView) == 0 {
		return "No data for the selected filters."
	}
	cards := m.renderKPICards(width)
	var buf bytes.Buffer
	plotWidth := analytics.PlotWidthFor(width)
	if err := analytics.RenderRevenueTrend(&buf, m.snap.RevenueByDate, plotWidth, m.plotHeight, true); err != nil {
		buf.WriteString(fmt.Sprintf("Failed to render trend: %v", err))
	}
	if err := analytics.RenderCategoryMix(&buf, m.snap.RevenueByCategory); err != nil {
		buf.WriteString(fmt.Sprintf("Failed to render category mix: %v", err))
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func (m *Model) renderKPICards(width int) string {
	kpi := m.snap.KPIs
	cards := []string{
		metricCard("Total Revenue (AED)", fmt.Sprintf("%.0f", kpi.TotalRevenue)),
		metricCard("Total Units", fmt.Sprintf("%d", kpi.TotalUnits)),
		metricCard("Avg Basket", fmt.Sprintf("%.2f", kpi.AvgBasketSize)),
		metricCard("Avg Unit Price", fmt.Sprintf("%.2f", kpi.AvgUnitPrice)),
		metricCard("Avg Footfall", fmt.Sprintf("%.0f", kpi.AvgFootfall)),
		metricCard("Digital Conv. %", fmt.Sprintf("%.2f", kpi.DigitalConversionPct)),
	}
	if width < 90 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderSalesOps() string {
	if len(m.snap.SalesView) == 0 {
		return "No data for the selected filters."
	}
	var buf bytes.Buffer
	if err := analytics.RenderRegionStore(&buf, m.snap.RegionStore); err != nil {
		return fmt.Sprintf("Failed to render region-store table: %v", err)
	}
	if err := analytics.RenderPromoComparison(&buf, m.snap.PromoComparison); err != nil {
		return fmt.Sprintf("Failed to render promo comparison: %v", err)
	}
	if err := analytics.RenderDrivers(&buf, m.snap.Drivers); err != nil {
		return fmt.Sprintf("Failed to render drivers: %v", err)
	}
	buf.WriteString(m.renderPriceTrendNote())
	return strings.TrimRight(buf.String(), "\n")
}

// renderPriceTrendNote summarizes the price vs demand fit; the full
// scatter belongs to a richer frontend.
func (m *Model) renderPriceTrendNote() string {
	points := m.snap.PricePoints
	if len(points) < 2 {
		return ""
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.UnitPrice
		ys[i] = float64(p.UnitsSold)
	}
	slope, intercept, ok := analytics.FitLine(xs, ys)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Price vs Units Sold: fitted units = %.2f * price + %.2f over %d rows\n", slope, intercept, len(points))
}

func (m *Model) renderAlerts() string {
	if len(m.snap.SalesView) == 0 {
		return "No data to generate alerts."
	}
	var buf bytes.Buffer
	if err := analytics.RenderAlerts(&buf, m.snap.Restock, m.snap.PromoSuggest, m.snap.Staffing); err != nil {
		return fmt.Sprintf("Failed to render alerts: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.statusMsg = ""
	m.setInputsFromSpec()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		spec, err := m.parseFilterInputs()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.spec = spec
		m.filterMode = false
		m.filterError = ""
		m.refreshSnapshot()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilterInputs() (model.FilterSpec, error) {
	start, err := parseBound(m.filterInputs[inputStart].Value())
	if err != nil {
		return model.FilterSpec{}, fmt.Errorf("invalid start date (expected YYYY-MM-DD)")
	}
	end, err := parseBound(m.filterInputs[inputEnd].Value())
	if err != nil {
		return model.FilterSpec{}, fmt.Errorf("invalid end date (expected YYYY-MM-DD)")
	}
	return model.FilterSpec{
		Start:      start,
		End:        end,
		Regions:    parseList(m.filterInputs[inputRegions].Value()),
		Stores:     parseList(m.filterInputs[inputStores].Value()),
		Categories: parseList(m.filterInputs[inputCategories].Value()),
		Segments:   parseList(m.filterInputs[inputSegments].Value()),
	}, nil
}

func parseBound(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (m *Model) exportViews() (status, errMsg string) {
	salesPath := filepath.Join(m.exportDir, "filtered_sales.csv")
	personaPath := filepath.Join(m.exportDir, "filtered_persona.csv")
	if err := exportFile(salesPath, func(f *os.File) error {
		return dataset.WriteSales(f, m.snap.SalesView)
	}); err != nil {
		return "", fmt.Sprintf("export failed: %v", err)
	}
	if err := exportFile(personaPath, func(f *os.File) error {
		return dataset.WritePersonas(f, m.snap.PersonaView)
	}); err != nil {
		return "", fmt.Sprintf("export failed: %v", err)
	}
	return fmt.Sprintf("Exported %s and %s", salesPath, personaPath), ""
}

func exportFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after a failed write.
			_ = cerr
		}
		return err
	}
	return file.Close()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

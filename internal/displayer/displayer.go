package displayer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetview/internal/category"
	"fleetview/internal/handoff"
	"fleetview/internal/i18n"
	"fleetview/internal/mapview"
	"fleetview/internal/models"
	"fleetview/internal/navigation"
	"fleetview/internal/provider"
	"fleetview/internal/screens/home"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Displayer handles the TUI: the home screen with the vehicle list and the
// map screen fed through the hand-off store.
type Displayer struct {
	app      *tview.Application
	pages    *tview.Pages
	provider provider.VehicleProvider
	home     *home.Screen
	store    *handoff.Store
	nav      *navigation.Navigator
	tr       *i18n.Translator
	refresh  time.Duration
	ctx      context.Context
	cancel   context.CancelFunc

	// UI elements cached for updates
	titleText    *tview.TextView
	statusText   *tview.TextView
	helpText     *tview.TextView
	categoryText *tview.TextView
	loadingText  *tview.TextView
	mapButton    *tview.Button
	vehicleTable *tview.Table
	mapBox       *tview.Box
	legendText   *tview.TextView
}

func New(p provider.VehicleProvider, tr *i18n.Translator, refresh time.Duration) *Displayer {
	if refresh <= 0 {
		refresh = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	store := handoff.New()
	nav := navigation.New(navigation.HomeScreen)
	d := &Displayer{
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		provider: p,
		home:     home.New(p, store, nav, tr),
		store:    store,
		nav:      nav,
		tr:       tr,
		refresh:  refresh,
		ctx:      ctx,
		cancel:   cancel,
	}
	d.build()
	return d
}

func (d *Displayer) build() {
	d.titleText = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	d.statusText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	d.helpText = tview.NewTextView().SetTextAlign(tview.AlignCenter)

	headerFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	headerFlex.AddItem(d.titleText, 1, 0, false)
	headerFlex.AddItem(d.statusText, 1, 0, false)
	headerFlex.AddItem(d.helpText, 1, 0, false)

	d.pages.AddPage(string(navigation.HomeScreen), d.buildHome(), true, true)
	d.pages.AddPage(string(navigation.MapScreen), d.buildMap(), true, false)

	// Create main layout with header always visible
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(headerFlex, 3, 0, false)
	mainFlex.AddItem(d.pages, 0, 1, true)

	d.app.SetRoot(mainFlex, true)
	d.app.SetInputCapture(d.handleKey)

	d.home.OnFilteredChange(d.fillTable)
	d.nav.OnChange(d.showPage)
	d.showPage(navigation.HomeScreen)
}

// Run blocks until the user quits.
func (d *Displayer) Run() error {
	d.home.Sync()
	d.updateValues()

	// central BeforeDraw to update UI elements
	d.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		d.updateValues()
		return false
	})

	// refresh loop
	go d.refreshLoop()

	if err := d.app.Run(); err != nil {
		return err
	}
	return nil
}

func (d *Displayer) Shutdown() {
	d.cancel()
	d.app.Stop()
}

func (d *Displayer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Rune() == 'q' || event.Rune() == 'Q' {
		d.Shutdown()
		return nil
	}

	switch d.nav.Current() {
	case navigation.HomeScreen:
		if event.Key() == tcell.KeyRune {
			if r := event.Rune(); r >= '1' && r < '1'+rune(len(category.All)) {
				d.home.HandleCategoryPress(category.All[r-'1'])
				d.updateCategories()
				return nil
			}
			if r := event.Rune(); r == 'm' || r == 'M' {
				d.home.GoMapScreen()
				return nil
			}
		}
	case navigation.MapScreen:
		if event.Key() == tcell.KeyEscape || event.Rune() == 'b' || event.Rune() == 'B' {
			d.nav.Back()
			return nil
		}
	}
	return event
}

func (d *Displayer) showPage(screen navigation.Screen) {
	d.pages.SwitchToPage(string(screen))
	switch screen {
	case navigation.MapScreen:
		d.titleText.SetText(d.tr.T("MAP_TITLE"))
		d.helpText.SetText(d.tr.T("HELP_MAP"))
		d.updateLegend()
	default:
		d.titleText.SetText(d.tr.T("HOME_TITLE"))
		d.helpText.SetText(d.tr.T("HELP_HOME"))
		d.app.SetFocus(d.mapButton)
	}
}

func (d *Displayer) buildHome() *tview.Flex {
	d.categoryText = tview.NewTextView().SetDynamicColors(true)
	d.loadingText = tview.NewTextView().SetDynamicColors(true)
	d.mapButton = tview.NewButton(d.tr.T("SEE_MAP")).SetSelectedFunc(d.home.GoMapScreen)

	d.vehicleTable = tview.NewTable().SetBorders(true).SetFixed(1, 0)
	d.fillTable(d.home.Vehicles())
	d.updateCategories()

	flex := tview.NewFlex().SetDirection(tview.FlexRow)
	flex.AddItem(d.loadingText, 1, 0, false)
	flex.AddItem(d.categoryText, 1, 0, false)
	flex.AddItem(d.mapButton, 1, 0, true)
	flex.AddItem(d.vehicleTable, 0, 1, false)
	return flex
}

func (d *Displayer) buildMap() *tview.Flex {
	d.mapBox = tview.NewBox().SetBorder(true)
	d.mapBox.SetDrawFunc(d.drawMap)
	d.legendText = tview.NewTextView().SetDynamicColors(true)

	flex := tview.NewFlex().SetDirection(tview.FlexRow)
	flex.AddItem(d.mapBox, 0, 1, true)
	flex.AddItem(d.legendText, 2, 0, false)
	return flex
}

func (d *Displayer) fillTable(data models.VehiclesData) {
	tbl := d.vehicleTable
	tbl.Clear()
	for col, key := range []string{"NAME", "CATEGORY", "DRIVER", "PHONE"} {
		tbl.SetCell(0, col, tview.NewTableCell(d.tr.T(key)).SetSelectable(false).SetAlign(tview.AlignCenter))
	}
	if len(data.Vehicles) == 0 {
		tbl.SetCell(1, 0, tview.NewTableCell(d.tr.T("NO_VEHICLES")).SetSelectable(false))
		return
	}
	for i, v := range data.Vehicles {
		tbl.SetCell(i+1, 0, tview.NewTableCell(v.Name))
		tbl.SetCell(i+1, 1, tview.NewTableCell(d.home.CategoryLabel(v.CategoryID)))
		tbl.SetCell(i+1, 2, tview.NewTableCell(v.DriverName))
		tbl.SetCell(i+1, 3, tview.NewTableCell(v.DriverPhone))
	}
}

func (d *Displayer) updateCategories() {
	d.categoryText.SetText(categoryLine(d.home.Categories()))
}

func categoryLine(items []home.CategoryItem) string {
	parts := make([]string, 0, len(items))
	for i, it := range items {
		mark := tview.Escape("[ ]")
		if it.Selected {
			mark = "[green]" + tview.Escape("[x]") + "[white]"
		}
		parts = append(parts, fmt.Sprintf("%d %s %s", i+1, mark, it.Label))
	}
	return strings.Join(parts, "   ")
}

func (d *Displayer) updateLegend() {
	data := d.store.FilteredData()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d | ", len(data.Vehicles))
	for _, c := range category.All {
		if desc, ok := category.Lookup(c); ok {
			fmt.Fprintf(&sb, "%c %s  ", desc.Glyph, d.tr.T(desc.Key))
		}
	}
	d.legendText.SetText(sb.String())
}

func (d *Displayer) drawMap(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	innerX, innerY, innerW, innerH := x+1, y+1, width-2, height-2
	data := d.store.FilteredData()
	if len(data.Vehicles) == 0 {
		drawCentered(screen, d.tr.T("NO_VEHICLES"), innerX, innerY+innerH/2, innerW, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		return innerX, innerY, innerW, innerH
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, m := range mapview.Project(data.Vehicles, innerW, innerH) {
		screen.SetContent(innerX+m.X, innerY+m.Y, m.Glyph, nil, style)
	}
	return innerX, innerY, innerW, innerH
}

func drawCentered(screen tcell.Screen, text string, x, y, width int, style tcell.Style) {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	start := x + (width-len(runes))/2
	for i, r := range runes {
		screen.SetContent(start+i, y, r, nil, style)
	}
}

func (d *Displayer) updateValues() {
	if d.home.IsLoading() {
		d.loadingText.SetText("[yellow]" + tview.Escape(d.tr.T("LOADING")) + "[white]")
	} else {
		d.loadingText.SetText("")
	}

	status := "[red]disconnected[white]"
	if d.provider.IsConnected() {
		status = "[green]connected[white]"
	}
	d.statusText.SetText(fmt.Sprintf("Status: %s", status))
}

func (d *Displayer) refreshLoop() {
	ticker := time.NewTicker(d.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.app.QueueUpdateDraw(d.home.Sync)
		}
	}
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/llm"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/mealplan"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/pantry"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
	invviews "github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/views/inventory"
	planviews "github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/views/mealplan"
	shopviews "github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/views/shopping"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/views/suggest"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the height taken by header, alert bar and footer.
const chromeLines = 6

// Module represents a view module in the application.
type Module string

const (
	ModuleInventory Module = "inventory"
	ModuleShopping  Module = "shopping"
	ModuleMealPlan  Module = "mealplan"
	ModuleSuggest   Module = "suggest"
	ModuleHelp      Module = "help"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	ctx    context.Context
	db     *database.DB
	config *config.Config
	clock  util.Clock

	// Services
	pantrySvc *pantry.Service
	planSvc   *mealplan.Service

	// Views
	inventoryView *invviews.View
	itemForm      *invviews.AddForm
	shoppingView  *shopviews.View
	shoppingForm  *shopviews.AddForm
	planView      *planviews.View
	entryForm     *planviews.EntryForm
	suggestView   *suggest.View

	// UI state
	theme    *Theme
	keys     KeyMap
	width    int
	height   int
	ready    bool
	quitting bool
	confirm  *confirmation
	busy     string

	// Current view
	currentModule  Module
	previousModule Module
	showDetail     bool // Show the selected meal plan entry
	showForm       bool // Show the add form of the current module

	alerts []Alert

	// Row counts for the header, refreshed after every mutation.
	counts map[string]int64
}

// Alert represents a status message.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// confirmation is a yes/no dialog guarding a destructive action.
type confirmation struct {
	title   string
	message string
	onYes   func() tea.Cmd
}

// tickMsg is sent periodically to update the clock.
type tickMsg time.Time

// New creates a new App instance. gen may be nil when no text generation
// provider is configured.
func New(db *database.DB, cfg *config.Config, gen llm.TextGenerator, clock util.Clock) *App {
	if clock == nil {
		clock = util.SystemClock{}
	}
	tag := cfg.Display.Tag()

	pantrySvc := pantry.NewService(db)
	planSvc := mealplan.NewService(db, gen, cfg.LLM.Language)

	theme := NewTheme(cfg.Display.ColorScheme)
	components.UsePalette(theme.Palette())

	return &App{
		ctx:           context.Background(),
		db:            db,
		config:        cfg,
		clock:         clock,
		pantrySvc:     pantrySvc,
		planSvc:       planSvc,
		inventoryView: invviews.NewView(pantrySvc, tag),
		shoppingView:  shopviews.NewView(pantrySvc),
		planView:      planviews.NewView(planSvc),
		suggestView:   suggest.NewView(planSvc),
		theme:         theme,
		keys:          DefaultKeyMap(),
		currentModule: ModuleInventory,
		alerts:        []Alert{},
		counts:        map[string]int64{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.loadModule(ModuleInventory),
		a.loadCounts(),
	)
}

// tickCmd returns a command that sends tick messages.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type countsMsg struct {
	tables map[string]int64
}

type loadedMsg struct {
	module Module
	err    error
}

type reconciledMsg struct {
	result *pantry.ReconcileResult
	err    error
}

type intakeMsg struct {
	result *pantry.IntakeResult
	err    error
}

type itemAddedMsg struct {
	item *models.InventoryItem
	err  error
}

type shoppingAddedMsg struct {
	name string
	err  error
}

type entryFormMsg struct {
	names []string
	err   error
}

type entryAddedMsg struct {
	entry *models.MealPlanEntry
	err   error
}

type suggestedMsg struct {
	text string
	err  error
}

type clearedMsg struct {
	what    string
	removed int64
	err     error
}

// loadCounts reads the table sizes shown in the header.
func (a *App) loadCounts() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.db.GetStats(a.ctx)
		if err != nil {
			slog.Debug("reading stats", "error", err)
			return countsMsg{}
		}
		return countsMsg{tables: stats.Tables}
	}
}

// loadModule reloads the data behind a module.
func (a *App) loadModule(m Module) tea.Cmd {
	var load func(context.Context) error
	switch m {
	case ModuleInventory:
		load = a.inventoryView.Load
	case ModuleShopping:
		load = a.shoppingView.Load
	case ModuleMealPlan:
		load = a.planView.Load
	default:
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{module: m, err: load(a.ctx)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case tickMsg:
		return a, tickCmd()

	case countsMsg:
		if msg.tables != nil {
			a.counts = msg.tables
		}
		return a, nil

	case loadedMsg:
		if msg.err != nil {
			slog.Error("loading view", "module", msg.module, "error", msg.err)
			a.AddAlert(AlertWarning, fmt.Sprintf("Could not load %s", moduleTitle(msg.module)))
		}
		return a, nil

	case reconciledMsg:
		a.busy = ""
		return a, a.afterReconcile(msg)

	case intakeMsg:
		a.busy = ""
		return a, a.afterIntake(msg)

	case itemAddedMsg:
		a.busy = ""
		if msg.err != nil {
			a.rejectForm(msg.err, a.itemForm.Reject)
			return a, nil
		}
		a.closeForm()
		a.AddAlert(AlertInfo, fmt.Sprintf("Added %s (%d)", msg.item.Name, msg.item.Quantity))
		cmds := []tea.Cmd{a.loadCounts()}
		if !a.inventoryView.Dirty() {
			cmds = append(cmds, a.loadModule(ModuleInventory))
		}
		return a, tea.Batch(cmds...)

	case shoppingAddedMsg:
		a.busy = ""
		if msg.err != nil {
			a.rejectForm(msg.err, a.shoppingForm.Reject)
			return a, nil
		}
		a.closeForm()
		a.AddAlert(AlertInfo, fmt.Sprintf("Added %s to the shopping list", msg.name))
		return a, tea.Batch(a.loadModule(ModuleShopping), a.loadCounts())

	case entryFormMsg:
		a.busy = ""
		if msg.err != nil {
			slog.Error("loading ingredients", "error", msg.err)
			a.AddAlert(AlertWarning, "Could not load inventory")
			return a, nil
		}
		a.entryForm = planviews.NewEntryForm(models.DayOf(a.clock.Now()), msg.names)
		a.showForm = true
		return a, nil

	case entryAddedMsg:
		a.busy = ""
		if msg.err != nil {
			if mealplan.IsGenerationError(msg.err) {
				a.AddAlert(AlertCritical, msg.err.Error())
				a.entryForm.Reject(msg.err)
				return a, nil
			}
			a.rejectForm(msg.err, a.entryForm.Reject)
			return a, nil
		}
		a.closeForm()
		a.AddAlert(AlertInfo, planviews.Summary(msg.entry))
		return a, tea.Batch(a.loadModule(ModuleMealPlan), a.loadCounts())

	case suggestedMsg:
		a.busy = ""
		a.suggestView.Finish(msg.text, msg.err)
		if msg.err != nil {
			if mealplan.IsGenerationError(msg.err) {
				a.AddAlert(AlertCritical, msg.err.Error())
			} else {
				slog.Error("suggestion failed", "error", msg.err)
				a.AddAlert(AlertWarning, "Could not load inventory")
			}
		}
		return a, nil

	case clearedMsg:
		a.busy = ""
		if msg.err != nil {
			slog.Error("clearing", "what", msg.what, "error", msg.err)
			a.AddAlert(AlertWarning, components.SaveFailed)
		} else {
			a.AddAlert(AlertInfo, fmt.Sprintf("Cleared %s (%d removed)", msg.what, msg.removed))
		}
		return a, tea.Batch(a.loadModule(a.currentModule), a.loadCounts())
	}

	return a, nil
}

// rejectForm hands err back to the open form. Validation errors stay on the
// form; storage errors also raise the generic alert.
func (a *App) rejectForm(err error, reject func(error)) {
	if !models.IsValidation(err) {
		slog.Error("saving form", "module", a.currentModule, "error", err)
		a.AddAlert(AlertWarning, components.SaveFailed)
	}
	reject(err)
}

func (a *App) closeForm() {
	a.showForm = false
	a.itemForm = nil
	a.shoppingForm = nil
	a.entryForm = nil
}

func (a *App) afterReconcile(msg reconciledMsg) tea.Cmd {
	if msg.result == nil {
		slog.Error("saving inventory", "error", msg.err)
		a.AddAlert(AlertWarning, components.SaveFailed)
		return nil
	}

	res := msg.result
	for _, f := range res.Failures {
		slog.Error("inventory change failed", "item", f.Name, "rule", f.Rule, "error", f.Err)
	}
	switch {
	case len(res.Failures) > 0:
		a.AddAlert(AlertWarning, fmt.Sprintf("%s: %d item(s) not saved", components.SaveFailed, len(res.Failures)))
	case res.Changed():
		a.AddAlert(AlertInfo, "Inventory updated: "+res.Summary())
	default:
		a.AddAlert(AlertInfo, "Nothing to save")
	}
	return tea.Batch(a.loadModule(ModuleInventory), a.loadModule(ModuleShopping), a.loadCounts())
}

func (a *App) afterIntake(msg intakeMsg) tea.Cmd {
	if msg.result == nil {
		slog.Error("shopping intake", "error", msg.err)
		a.AddAlert(AlertWarning, components.SaveFailed)
		return nil
	}

	res := msg.result
	for _, f := range res.Failures {
		slog.Error("intake failed", "item", f.Name, "rule", f.Rule, "error", f.Err)
	}
	switch {
	case len(res.Failures) > 0:
		a.AddAlert(AlertWarning, fmt.Sprintf("%s: %d item(s) not moved", components.SaveFailed, len(res.Failures)))
	case len(res.Received) > 0:
		a.AddAlert(AlertInfo, fmt.Sprintf("Moved %d item(s) into the inventory", len(res.Received)))
	default:
		a.AddAlert(AlertInfo, "Nothing to move. Flag items and enter a bought quantity.")
	}

	cmds := []tea.Cmd{a.loadModule(ModuleShopping), a.loadCounts()}
	if !a.inventoryView.Dirty() {
		cmds = append(cmds, a.loadModule(ModuleInventory))
	}
	return tea.Batch(cmds...)
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation dialog takes priority
	if a.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			c := a.confirm
			a.confirm = nil
			return a, c.onYes()
		case "n", "N", "esc":
			a.confirm = nil
		}
		return a, nil
	}

	if msg.String() == "ctrl+c" {
		a.askQuit()
		return a, nil
	}

	// Nothing else while a request is in flight.
	if a.busy != "" {
		return a, nil
	}

	// Forms need all input
	if a.showForm {
		return a.handleFormKeys(msg)
	}

	if ed := a.openEditor(); ed != nil {
		ed.HandleEditKey(msg.String())
		return a, nil
	}

	if a.keys.IsQuit(msg) {
		a.askQuit()
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		return a, a.switchModule(a.keys.GetFunctionKeyModule(msg))
	}

	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleInventory:
		return a.handleInventoryKeys(msg)
	case ModuleShopping:
		return a.handleShoppingKeys(msg)
	case ModuleMealPlan:
		return a.handleMealPlanKeys(msg)
	case ModuleSuggest:
		return a.handleSuggestKeys(msg)
	}

	return a, nil
}

// quantityEditor is a grid with a quantity prompt that takes every key while open.
type quantityEditor interface {
	Editing() bool
	HandleEditKey(key string)
}

func (a *App) openEditor() quantityEditor {
	var ed quantityEditor
	switch a.currentModule {
	case ModuleInventory:
		ed = a.inventoryView
	case ModuleShopping:
		ed = a.shoppingView
	default:
		return nil
	}
	if !ed.Editing() {
		return nil
	}
	return ed
}

func (a *App) askQuit() {
	message := "Are you sure you want to exit?"
	if n := a.inventoryView.Pending(); n > 0 {
		message = fmt.Sprintf("%d unsaved inventory change(s) will be lost.\n%s", n, message)
	}
	a.confirm = &confirmation{
		title:   "CONFIRM EXIT",
		message: message,
		onYes: func() tea.Cmd {
			a.quitting = true
			return tea.Quit
		},
	}
}

// switchModule moves to m. Help remembers where it came from.
func (a *App) switchModule(m Module) tea.Cmd {
	switch m {
	case "":
		// F10 is handled as quit.
		a.askQuit()
		return nil
	case ModuleHelp:
		if a.currentModule != ModuleHelp {
			a.previousModule = a.currentModule
		}
		a.currentModule = ModuleHelp
		return nil
	}

	a.currentModule = m
	a.previousModule = ""
	a.showDetail = false

	// Unsaved inventory edits survive switching modules.
	if m == ModuleInventory && a.inventoryView.Dirty() {
		return nil
	}
	return a.loadModule(m)
}

// handleFormKeys forwards keys to the open form and submits it when asked.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case a.itemForm != nil:
		a.itemForm.HandleKey(key)
		if a.itemForm.IsCancelled() {
			a.closeForm()
		} else if a.itemForm.IsSubmitted() {
			if in, ok := a.itemForm.Input(); ok {
				return a, a.addItem(in)
			}
		}
	case a.shoppingForm != nil:
		a.shoppingForm.HandleKey(key)
		if a.shoppingForm.IsCancelled() {
			a.closeForm()
		} else if a.shoppingForm.IsSubmitted() {
			if in, ok := a.shoppingForm.Input(); ok {
				return a, a.addShopping(in)
			}
		}
	case a.entryForm != nil:
		a.entryForm.HandleKey(key)
		if a.entryForm.IsCancelled() {
			a.closeForm()
		} else if a.entryForm.IsSubmitted() {
			if in, ok := a.entryForm.Input(); ok {
				return a, a.addEntry(in, a.entryForm.IsDraft())
			}
		}
	default:
		a.showForm = false
	}

	return a, nil
}

// handleInventoryKeys handles the editable inventory grid.
func (a *App) handleInventoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.inventoryView

	switch {
	case a.keys.Up.Matches(msg):
		v.MoveUp()
	case a.keys.Down.Matches(msg):
		v.MoveDown()
	case a.keys.Save.Matches(msg):
		return a, a.saveInventory()
	case a.keys.Add.Matches(msg):
		a.itemForm = invviews.NewAddForm()
		a.showForm = true
	case a.keys.Reload.Matches(msg):
		if !v.Dirty() {
			return a, a.loadModule(ModuleInventory)
		}
		a.confirm = &confirmation{
			title:   "DISCARD CHANGES",
			message: fmt.Sprintf("Drop %d unsaved change(s) and reload?", v.Pending()),
			onYes:   func() tea.Cmd { return a.loadModule(ModuleInventory) },
		}
	default:
		switch msg.String() {
		case "+", "=":
			v.Increment()
		case "-":
			v.Decrement()
		case "e", "enter":
			v.EditQuantity()
		case "0":
			v.UsedUp()
		case "c":
			v.ToggleCore()
		case "x", "delete":
			v.ToggleRemove()
		case "u":
			v.Revert()
		case "f":
			v.CycleCategory()
		}
	}

	return a, nil
}

func (a *App) saveInventory() tea.Cmd {
	if !a.inventoryView.Dirty() {
		a.AddAlert(AlertInfo, "Nothing to save")
		return nil
	}
	a.busy = "Saving inventory..."
	return func() tea.Msg {
		res, err := a.inventoryView.Save(a.ctx)
		return reconciledMsg{result: res, err: err}
	}
}

func (a *App) addItem(in pantry.AddItemInput) tea.Cmd {
	a.busy = "Saving..."
	return func() tea.Msg {
		item, err := a.pantrySvc.AddItem(a.ctx, in)
		return itemAddedMsg{item: item, err: err}
	}
}

// handleShoppingKeys handles the shopping list grid.
func (a *App) handleShoppingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.shoppingView

	switch {
	case a.keys.Up.Matches(msg):
		v.MoveUp()
	case a.keys.Down.Matches(msg):
		v.MoveDown()
	case a.keys.Save.Matches(msg):
		a.busy = "Updating shopping list..."
		return a, func() tea.Msg {
			res, err := v.Intake(a.ctx)
			return intakeMsg{result: res, err: err}
		}
	case a.keys.Add.Matches(msg):
		a.shoppingForm = shopviews.NewAddForm()
		a.showForm = true
	case a.keys.Clear.Matches(msg):
		if v.Len() == 0 {
			return a, nil
		}
		a.confirm = &confirmation{
			title:   "CLEAR SHOPPING LIST",
			message: fmt.Sprintf("Remove all %d entries from the shopping list?", v.Len()),
			onYes: func() tea.Cmd {
				a.busy = "Clearing..."
				return func() tea.Msg {
					n, err := a.pantrySvc.ClearShoppingList(a.ctx)
					return clearedMsg{what: "shopping list", removed: n, err: err}
				}
			},
		}
	case a.keys.Reload.Matches(msg):
		return a, a.loadModule(ModuleShopping)
	default:
		switch msg.String() {
		case "+", "=":
			v.Increment()
		case "-":
			v.Decrement()
		case "e":
			v.EditQuantity()
		case " ", "enter":
			v.ToggleAdd()
		}
	}

	return a, nil
}

func (a *App) addShopping(in pantry.AddShoppingInput) tea.Cmd {
	a.busy = "Saving..."
	return func() tea.Msg {
		name, err := a.pantrySvc.AddShoppingItem(a.ctx, in)
		return shoppingAddedMsg{name: name, err: err}
	}
}

// handleMealPlanKeys handles the weekly plan list and entry detail.
func (a *App) handleMealPlanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		return a, nil
	}

	v := a.planView
	switch {
	case a.keys.Up.Matches(msg):
		v.MoveUp()
	case a.keys.Down.Matches(msg):
		v.MoveDown()
	case a.keys.Select.Matches(msg):
		if _, ok := v.Selected(); ok {
			a.showDetail = true
		}
	case a.keys.Add.Matches(msg):
		return a, a.openEntryForm()
	case a.keys.Clear.Matches(msg):
		if v.Len() == 0 {
			return a, nil
		}
		a.confirm = &confirmation{
			title:   "CLEAR MEAL PLAN",
			message: fmt.Sprintf("Remove all %d planned meals?", v.Len()),
			onYes: func() tea.Cmd {
				a.busy = "Clearing..."
				return func() tea.Msg {
					n, err := a.planSvc.Clear(a.ctx)
					return clearedMsg{what: "meal plan", removed: n, err: err}
				}
			},
		}
	case a.keys.Reload.Matches(msg):
		return a, a.loadModule(ModuleMealPlan)
	}

	return a, nil
}

// openEntryForm reads the current inventory names, which the form offers as
// ingredients.
func (a *App) openEntryForm() tea.Cmd {
	a.busy = "Loading..."
	tag := a.config.Display.Tag()
	return func() tea.Msg {
		rows, err := a.pantrySvc.Snapshot(a.ctx)
		if err != nil {
			return entryFormMsg{err: err}
		}
		names := make([]string, len(rows))
		for i, r := range rows {
			names[i] = r.Name
		}
		return entryFormMsg{names: util.SortNames(tag, names)}
	}
}

func (a *App) addEntry(in mealplan.EntryInput, draft bool) tea.Cmd {
	if draft {
		a.busy = "Drafting a recipe..."
	} else {
		a.busy = "Saving..."
	}
	return func() tea.Msg {
		var entry *models.MealPlanEntry
		var err error
		if draft {
			entry, err = a.planSvc.Draft(a.ctx, in)
		} else {
			entry, err = a.planSvc.AddEntry(a.ctx, in)
		}
		return entryAddedMsg{entry: entry, err: err}
	}
}

// handleSuggestKeys handles the suggestion panel.
func (a *App) handleSuggestKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.suggestView

	if a.keys.Select.Matches(msg) {
		v.Start()
		a.busy = "Asking for a recipe..."
		return a, func() tea.Msg {
			text, err := v.Request(a.ctx)
			return suggestedMsg{text: text, err: err}
		}
	}
	v.HandleKey(msg.String())
	return a, nil
}

// updateViewDimensions sizes the views to the terminal.
func (a *App) updateViewDimensions() {
	h := ContentHeight(a.height, chromeLines)
	a.inventoryView.SetHeight(h)
	a.shoppingView.SetHeight(h)
	a.planView.SetHeight(h)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Closing the pantry...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	if a.confirm != nil {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("PANTRY v%s", Version)
	now := a.clock.Now()

	var info string
	if GetBreakpoint(a.width) == BreakpointNarrow {
		info = now.Format("Mon 15:04")
	} else {
		info = fmt.Sprintf("Items: %d | Shopping: %d | Planned: %d | %s",
			a.counts["inventory"],
			a.counts["shopping_list"],
			a.counts["meal_plan"],
			now.Format("Mon 02 Jan 15:04"),
		)
	}

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 4
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar renders the newest alert, or the busy state.
func (a *App) renderAlertBar() string {
	var text string
	switch {
	case a.busy != "":
		text = a.theme.Accent.Render(a.busy)
	case len(a.alerts) > 0:
		alert := a.alerts[0]
		age := " (" + util.Ago(alert.Time, a.clock.Now()) + ")"
		switch alert.Level {
		case AlertCritical:
			text = a.theme.AlertCrit.Render("ERROR: "+alert.Message) + a.theme.Muted.Render(age)
		case AlertWarning:
			text = a.theme.AlertWarn.Render("WARNING: "+alert.Message) + a.theme.Muted.Render(age)
		default:
			text = a.theme.Alert.Render(alert.Message) + a.theme.Muted.Render(age)
		}
	default:
		text = a.theme.Muted.Render("Ready")
	}

	module := a.theme.Value.Render(strings.ToUpper(moduleTitle(a.currentModule)))
	return module + a.theme.StatusDivider.Render() + text
}

func moduleTitle(m Module) string {
	switch m {
	case ModuleInventory:
		return "inventory"
	case ModuleShopping:
		return "shopping list"
	case ModuleMealPlan:
		return "meal plan"
	case ModuleSuggest:
		return "suggestions"
	default:
		return string(m)
	}
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 40, MaxContentWidth)
	content := a.getModuleContent(contentWidth, height)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(content))
}

// getModuleContent returns the content for the current module.
func (a *App) getModuleContent(width, height int) string {
	switch a.currentModule {
	case ModuleInventory:
		if a.showForm && a.itemForm != nil {
			return a.itemForm.Render()
		}
		return a.inventoryView.Render(width, height)
	case ModuleShopping:
		if a.showForm && a.shoppingForm != nil {
			return a.shoppingForm.Render()
		}
		return a.shoppingView.Render(width, height)
	case ModuleMealPlan:
		if a.showForm && a.entryForm != nil {
			return a.entryForm.Render()
		}
		if a.showDetail {
			entry, ok := a.planView.Selected()
			if !ok {
				return a.planView.RenderDetail(nil, width)
			}
			return a.planView.RenderDetail(&entry, width)
		}
		return a.planView.Render(width, height)
	case ModuleSuggest:
		return a.suggestView.Render(width, height)
	default:
		return a.renderHelp(width)
	}
}

// renderHelp renders the help screen.
func (a *App) renderHelp(width int) string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	list := func(items [][2]string) string {
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = a.theme.Primary.Render(fmt.Sprintf("%-8s  %s", item[0], item[1]))
		}
		return strings.Join(lines, "\n")
	}

	nav := a.theme.Panel("MODULES", list([][2]string{
		{"F1", "Help"},
		{"F2", "Inventory"},
		{"F3", "Shopping list"},
		{"F4", "Meal plan"},
		{"F5", "AI suggestions"},
		{"F10", "Quit"},
	}), 36)

	controls := a.theme.Panel("CONTROLS", list([][2]string{
		{"Up/Down", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Back/Cancel"},
		{"Tab", "Next field"},
		{"Ctrl+S", "Save"},
		{"a", "Add"},
		{"e", "Type a quantity"},
		{"D", "Clear list"},
		{"r", "Reload"},
	}), 36)

	b.WriteString(SideBySide(nav, controls, width, 4))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("INVENTORY"))
	b.WriteString("\n")
	b.WriteString(a.theme.Label.Render(
		"  Edits are kept until Ctrl+S. A core item that reaches 0, or is removed,\n" +
			"  goes on the shopping list. Removing a core item also unflags it."))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the open confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render(a.confirm.title) + "\n\n" +
			a.theme.Base.Render(a.confirm.message) + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	help := Truncate(a.keys.StatusBarHelp(), max(a.width-2, 0))
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.Footer.Render(help)
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.clock.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application and blocks until it exits or ctx ends.
func Run(ctx context.Context, db *database.DB, cfg *config.Config, gen llm.TextGenerator, clock util.Clock) error {
	app := New(db, cfg, gen, clock)
	app.ctx = ctx

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/llm"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
)

// testNow is a Wednesday.
var testNow = time.Date(2026, time.March, 11, 18, 30, 0, 0, time.UTC)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrator, err := database.NewMigrator(db)
	if err != nil {
		t.Fatalf("creating migrator: %v", err)
	}
	if _, err := migrator.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// newTestApp creates an App backed by an in-memory database, a fixed clock
// and gen as the text generator. The window is set to 120x40 and marked
// ready.
func newTestApp(t *testing.T, gen llm.TextGenerator) (*App, *database.DB) {
	t.Helper()

	db := newTestDB(t)
	app := New(db, config.Default(), gen, util.FixedClock(testNow))

	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	return app, db
}

// run feeds a command's messages back into the app until none are left.
// Batches are expanded; ticks are dropped.
func run(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, tickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			run(app, c)
		}
	default:
		_, next := app.Update(msg)
		run(app, next)
	}
}

// press sends a key and runs whatever it triggers.
func press(app *App, msg tea.KeyMsg) {
	_, cmd := app.Update(msg)
	run(app, cmd)
}

// typeText presses one rune key per character.
func typeText(app *App, s string) {
	for _, r := range s {
		press(app, keyMsg(string(r)))
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

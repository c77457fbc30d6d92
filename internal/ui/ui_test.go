package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mixtape/internal/jobs"
)

func staticFetch(result jobs.Result, err error) StatusFunc {
	return func(ctx context.Context, jobID string) (jobs.Result, error) {
		return result, err
	}
}

func TestModel_Update(t *testing.T) {
	t.Run("Terminal Status Quits", func(t *testing.T) {
		m := NewModel(context.Background(), "j1", staticFetch(jobs.Result{}, nil))

		updated, cmd := m.Update(statusFetchedMsg(jobs.Result{Status: jobs.StatusComplete, Output: "done"}, nil))
		model := updated.(Model)

		if !model.done {
			t.Error("expected model done")
		}
		if model.Result().Status != jobs.StatusComplete {
			t.Errorf("status = %q, want Complete", model.Result().Status)
		}
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if msg := cmd(); msg != tea.Msg(tea.Quit()) {
			t.Errorf("expected tea.Quit, got %T", msg)
		}
	})

	t.Run("Live Status Schedules Next Poll", func(t *testing.T) {
		m := NewModel(context.Background(), "j1", staticFetch(jobs.Result{}, nil))

		updated, cmd := m.Update(statusFetchedMsg(jobs.Result{Status: jobs.StatusInProgress, Output: "working"}, nil))
		model := updated.(Model)

		if model.done {
			t.Error("model must not be done while in progress")
		}
		if cmd == nil {
			t.Error("expected a scheduled poll command")
		}
	})

	t.Run("Fetch Error Quits", func(t *testing.T) {
		m := NewModel(context.Background(), "j1", staticFetch(jobs.Result{}, nil))

		updated, cmd := m.Update(statusFetchedMsg(jobs.Result{}, fmt.Errorf("connection refused")))
		model := updated.(Model)

		if model.Err() == nil {
			t.Error("expected error recorded")
		}
		if cmd == nil {
			t.Error("expected quit command")
		}
	})

	t.Run("Quit Key", func(t *testing.T) {
		m := NewModel(context.Background(), "j1", staticFetch(jobs.Result{}, nil))

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
	})
}

func TestModel_View(t *testing.T) {
	t.Run("Shows Output When Terminal", func(t *testing.T) {
		m := NewModel(context.Background(), "j1", staticFetch(jobs.Result{}, nil))
		updated, _ := m.Update(statusFetchedMsg(jobs.Result{
			Status: jobs.StatusComplete,
			Output: "Playlist created: https://open.spotify.com/playlist/pl1",
		}, nil))

		view := updated.(Model).View()
		for _, want := range []string{"j1", "Complete", "open.spotify.com"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
	})

	t.Run("Shows Spinner While Queued", func(t *testing.T) {
		m := NewModel(context.Background(), "j1", staticFetch(jobs.Result{}, nil))

		if view := m.View(); !strings.Contains(view, "Queued") {
			t.Errorf("view missing queued status:\n%s", view)
		}
	})
}

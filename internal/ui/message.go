package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mixtape/internal/jobs"
)

// MsgKind enumerates all message types in the watch application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgStatusFetched MsgKind = iota
	MsgPollDue
)

// statusFetchedMsg is the constructor for [MsgStatusFetched]
func statusFetchedMsg(result jobs.Result, err error) Msg {
	return Msg{
		kind: MsgStatusFetched,
		data: struct {
			result jobs.Result
			err    error
		}{result, err},
	}
}

// pollDueMsg is the constructor for [MsgPollDue]
func pollDueMsg() Msg {
	return Msg{kind: MsgPollDue}
}

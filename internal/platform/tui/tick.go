// Package tui provides the Bubble Tea integration for blockfall.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Time   time.Time
	Ticker uint64 // ID of the game model that scheduled the tick
}

var tickerIDs atomic.Uint64

// nextTickerID returns a process-unique ID for a game model's tick loop.
func nextTickerID() uint64 {
	return tickerIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(ticker uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Ticker: ticker}
	})
}

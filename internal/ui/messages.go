package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Messages bridging the explorer provider's callbacks into the update loop.
// The provider runs on its own goroutine; each channel has a listen command
// that re-arms itself after delivering a message.
type modeChangedMsg struct{}

type promptRequestMsg struct{}

type statusMsg struct {
	text  string
	isErr bool
}

type runFinishedMsg struct {
	err error
}

func waitForModeChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return modeChangedMsg{}
	}
}

func waitForPromptRequest(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return promptRequestMsg{}
	}
}

func waitForStatus(ch <-chan statusMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

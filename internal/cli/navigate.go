package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view, returning to the previous one.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg tells views to reload their data, broadcast to the whole
// stack so list views under a form pick up mutations made above them.
type refreshViewMsg struct{}

// noticeMsg carries transient text (confirmations, flat failure lines)
// displayed in the content area until the next keypress.
type noticeMsg struct {
	text string
}

// loginRequiredMsg is emitted when the backend rejects the session (401).
// The appModel collapses the stack down to a fresh login view.
type loginRequiredMsg struct{}

// formDoneMsg is sent when a modal form completes or is cancelled.
// The appModel pops the form view atomically, then runs nextCmd.
type formDoneMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// notice returns a tea.Cmd that shows transient text.
func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

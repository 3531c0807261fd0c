package tui

// confirmModel is a yes/no prompt drawn over the current screen.
type confirmModel struct {
	message string
	yes     string
	no      string
}

func (m confirmModel) View() string {
	content := m.message + "\n\n"
	content += "y " + m.yes + "    n " + m.no
	return overlayBoxStyle.Render(content)
}

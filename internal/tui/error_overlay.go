package tui

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("Error") + "\n\n" + m.message + "\n\n" + helpStyle.Render("esc: dismiss")
	return overlayBoxStyle.Render(content)
}

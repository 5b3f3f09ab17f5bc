package ui

// Layout limits.
const (
	// maxToasts is how many notifications are drawn at once.
	maxToasts = 4

	// minContentWidth is the narrowest the output panel is laid out for.
	minContentWidth = 20

	// helpWidth and settingsWidth size the modal dialogs.
	helpWidth     = 44
	settingsWidth = 56

	// toastWidth caps a single notification line.
	toastWidth = 60
)

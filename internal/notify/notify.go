package notify

import (
	"fmt"

	"github.com/darkmavis/hindie-console-slayer/internal/pkg/logger"
)

// DialogTitle is the caption of the failure dialog.
const DialogTitle = "Error"

// Notifier reports fatal launch failures to the user.
type Notifier struct {
	appName string
	show    func(title, message string) error
}

// New creates a Notifier that names appName in its messages and shows them
// in a modal message box.
func New(appName string) *Notifier {
	return &Notifier{
		appName: appName,
		show:    showMessageBox,
	}
}

// SetShowFunc replaces the function that presents the dialog.
func (n *Notifier) SetShowFunc(fn func(title, message string) error) {
	if fn != nil {
		n.show = fn
	} else {
		n.show = showMessageBox
	}
}

// Message returns the dialog text for err.
func (n *Notifier) Message(err error) string {
	return fmt.Sprintf("Failed to launch %s:\n\n%v", n.appName, err)
}

// Report logs err and shows it in a modal dialog, blocking until the user
// dismisses it.
func (n *Notifier) Report(err error) {
	logger.Log.Error().Err(err).Str("app", n.appName).Msg("launch failed")

	if showErr := n.show(DialogTitle, n.Message(err)); showErr != nil {
		logger.Log.Warn().Err(showErr).Msg("failure dialog could not be shown")
	}
}

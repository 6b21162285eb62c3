//go:build !windows

package notify

import "github.com/darkmavis/hindie-console-slayer/internal/pkg/logger"

// showMessageBox only logs: there is no native message box outside Windows.
func showMessageBox(title, message string) error {
	logger.Log.Info().Str("title", title).Str("message", message).Msg("Dialog (non-Windows, logged):")
	return nil
}

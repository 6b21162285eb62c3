//go:build windows

package config

import (
	"golang.org/x/sys/windows/registry"
)

// steamDirFromRegistry reads the SteamPath value the Steam client keeps up to date.
func steamDirFromRegistry() string {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Software\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()

	dir, _, err := k.GetStringValue("SteamPath")
	if err != nil {
		return ""
	}
	return dir
}

package config

import "path/filepath"

// defaultSteamDir is where the Steam client installs itself unless told otherwise.
const defaultSteamDir = `C:\Program Files (x86)\Steam`

// DefaultTargetPath returns the path of the Steam build of the Houdini Indie
// launcher inside the local Steam library.
func DefaultTargetPath() string {
	return TargetPathIn(SteamDir())
}

// TargetPathIn returns the Houdini Indie launcher path inside steamDir.
func TargetPathIn(steamDir string) string {
	return filepath.Join(steamDir, "steamapps", "common", "Houdini Indie", "bin", "hindie.steam.exe")
}

// SteamDir returns the Steam install directory, falling back to the
// default location when it cannot be discovered.
func SteamDir() string {
	if dir := steamDirFromRegistry(); dir != "" {
		return filepath.Clean(dir)
	}
	return defaultSteamDir
}

//go:build !windows

package config

func steamDirFromRegistry() string {
	return ""
}

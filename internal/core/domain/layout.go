package domain

import (
	"os"
	"path/filepath"
)

const (
	// ReelDirName is the name of the per-user state directory.
	ReelDirName = ".reel"

	// TokenFileName is the name of the file holding the bearer token.
	TokenFileName = "auth_token"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "config.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultReelPath returns the per-user state directory.
// It falls back to a relative .reel directory when the home directory is unknown.
func DefaultReelPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ReelDirName
	}
	return filepath.Join(home, ReelDirName)
}

// DefaultTokenPath returns the default path of the token file.
func DefaultTokenPath() string {
	return filepath.Join(DefaultReelPath(), TokenFileName)
}

// DefaultConfigPath returns the default path of the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultReelPath(), ConfigFileName)
}

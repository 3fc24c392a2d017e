package accounts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/switchbox-dev/switchbox/internal/utils"
)

// CopyProfiles copies every .json profile from srcDir into dstDir, skipping
// names that already exist there. Used when the accounts directory moves so
// existing profiles follow the setting. Returns the number copied.
func CopyProfiles(srcDir, dstDir string) (int, error) {
	if !utils.DirExists(srcDir) || srcDir == dstDir {
		return 0, nil
	}
	if err := utils.EnsureDir(dstDir); err != nil {
		return 0, err
	}

	dirents, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		target := filepath.Join(dstDir, de.Name())
		if utils.FileExists(target) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(srcDir, de.Name()))
		if err != nil {
			continue
		}
		if err := os.WriteFile(target, data, 0o600); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

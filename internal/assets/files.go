package assets

import (
	"os"

	"github.com/switchbox-dev/switchbox/internal/utils"
)

// readOptional returns the file's content, or "" when it does not exist.
func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeFile(path, content string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// ReadAgents returns the agent instructions file, empty when absent.
func (l Layout) ReadAgents() (string, error) { return readOptional(l.AgentsFile()) }

func (l Layout) SaveAgents(content string) error { return writeFile(l.AgentsFile(), content) }

// ReadConfigTOML returns the tool's config.toml, empty when absent.
func (l Layout) ReadConfigTOML() (string, error) { return readOptional(l.ConfigFile()) }

func (l Layout) SaveConfigTOML(content string) error { return writeFile(l.ConfigFile(), content) }

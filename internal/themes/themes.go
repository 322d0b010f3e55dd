// Package themes bundles the stylesheets offered by every shell.
package themes

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed *.css
var files embed.FS

// Default is the theme used when none is requested.
const Default = "minimalist"

// ErrUnknownTheme is returned for a name that is not bundled.
var ErrUnknownTheme = errors.New("unknown theme")

// Names lists the bundled themes.
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// CSS returns the stylesheet of a bundled theme.
func CSS(name string) (string, error) {
	if name == "" {
		name = Default
	}
	if strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("%w '%s'", ErrUnknownTheme, name)
	}
	data, err := files.ReadFile(name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w '%s'", ErrUnknownTheme, name)
	}
	return string(data), nil
}

// Load returns a bundled theme by name, or reads nameOrPath as a CSS file.
func Load(nameOrPath string) (string, error) {
	if css, err := CSS(nameOrPath); err == nil {
		return css, nil
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w '%s' (not bundled and no such file)", ErrUnknownTheme, nameOrPath)
		}
		return "", fmt.Errorf("unable to read theme file '%s': %w", nameOrPath, err)
	}
	return string(data), nil
}

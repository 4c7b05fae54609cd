// Package browser opens story URLs in the user's browser or image viewer.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches URLs with a platform-appropriate command. The zero
// value resolves the command on first use.
type Opener struct {
	command string
}

// NewOpener picks the first available opener for the current platform,
// preferring an explicit override from configuration.
func NewOpener(override string) *Opener {
	if override != "" {
		return &Opener{command: override}
	}
	return &Opener{command: findCommand(platformOpeners()...)}
}

func platformOpeners() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"start"}
	default:
		return []string{"xdg-open", "sensible-browser", "x-www-browser"}
	}
}

// Open launches the URL detached; the viewer outlives the CLI process.
func (o *Opener) Open(url string) error {
	if o.command == "" {
		return fmt.Errorf("no application found to open %s", url)
	}

	cmd := exec.Command(o.command, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.command, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}

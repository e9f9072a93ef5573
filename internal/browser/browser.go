// Package browser opens article links in the system web browser. The
// preview UI uses it for the "open" keybinding.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the platform browser for an http(s) URL. Anything else
// is rejected before a command is built.
func Open(rawURL string) error {
	if err := validate(rawURL); err != nil {
		return err
	}
	name, args := launcher(runtime.GOOS, rawURL)
	return exec.Command(name, args...).Start()
}

func validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}

func launcher(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// rundll32 instead of cmd /c start, to avoid shell interpretation
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}

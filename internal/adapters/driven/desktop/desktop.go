// Package desktop integrates with the user's desktop session: the system
// clipboard and the default web browser.
package desktop

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Ensure adapters implement the interfaces.
var (
	_ driven.Clipboard = (*Clipboard)(nil)
	_ driven.URLOpener = (*Browser)(nil)
)

// Clipboard writes to the system clipboard.
type Clipboard struct{}

// NewClipboard creates a clipboard adapter.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return domain.ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

var execCommand = exec.Command

// Browser opens URLs with the platform's default handler.
type Browser struct {
	goos string
}

// NewBrowser creates a browser adapter for the running platform.
func NewBrowser() *Browser {
	return &Browser{goos: runtime.GOOS}
}

// Open starts the default browser on url without waiting for it to exit.
func (b *Browser) Open(url string) error {
	name, args, err := openCommand(b.goos, url)
	if err != nil {
		return err
	}
	cmd := execCommand(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

func openCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupported, goos)
	}
}

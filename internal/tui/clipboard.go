package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardTools lists the copy commands tried on linux, in order.
var clipboardTools = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// clipboardCommand picks the copy command for goos using lookPath to check
// which tools are installed.
func clipboardCommand(goos string, lookPath func(string) (string, error)) ([]string, error) {
	switch goos {
	case "darwin":
		return []string{"pbcopy"}, nil
	case "windows":
		return []string{"clip"}, nil
	case "linux", "freebsd", "openbsd":
		for _, tool := range clipboardTools {
			if _, err := lookPath(tool[0]); err == nil {
				return tool, nil
			}
		}
		return nil, fmt.Errorf("no clipboard tool: install wl-clipboard, xclip or xsel")
	}
	return nil, fmt.Errorf("clipboard not supported on %s", goos)
}

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	argv, err := clipboardCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}

	return nil
}

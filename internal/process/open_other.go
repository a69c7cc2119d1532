//go:build !darwin && !windows

package process

func openCommand(target string) (string, []string) {
	return "xdg-open", []string{target}
}

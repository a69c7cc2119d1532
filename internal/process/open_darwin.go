//go:build darwin

package process

func openCommand(target string) (string, []string) {
	return "open", []string{target}
}

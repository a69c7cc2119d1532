//go:build windows

package process

func openCommand(target string) (string, []string) {
	return "rundll32", []string{"url.dll,FileProtocolHandler", target}
}

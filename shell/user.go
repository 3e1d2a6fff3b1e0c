package shell

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
)

// Cwd returns the current working directory of a process by reading its
// /proc cwd link.
func Cwd(pid int) (string, error) {
	return os.Readlink(filepath.Join("/proc", strconv.Itoa(pid), "cwd"))
}

// FindShell finds the user's shell: $SHELL, then the passwd entry, then
// common paths.
func FindShell() string {
	if shell := os.Getenv("SHELL"); shell != "" && isExecutable(shell) {
		return shell
	}

	currentUser, err := user.Current()
	if err == nil {
		shell := getUserShell("/etc/passwd", currentUser.Username)
		if shell != "" && isExecutable(shell) {
			return shell
		}
	}

	// Fallback to common shells
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/zsh", "/usr/bin/zsh", "/bin/sh"}
	for _, shell := range shells {
		if isExecutable(shell) {
			return shell
		}
	}
	return "/bin/sh"
}

// getUserShell reads the user's shell from a passwd file
func getUserShell(passwd, username string) string {
	data, err := os.ReadFile(passwd)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == username {
			return fields[6]
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0111 != 0
}

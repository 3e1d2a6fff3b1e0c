package tab

import "fmt"

// FormatLabel renders a tab label: "[<slot+1>] - <counter>@<cwd>", with "?"
// standing in for an unknown cwd.
func FormatLabel(slot, counter int, cwd string, hasCwd bool, budget int) string {
	dir := "?"
	if hasCwd {
		dir = TruncatePath(cwd, budget)
	}
	return fmt.Sprintf("[%d] - %d@%s", slot+1, counter, dir)
}

// TruncatePath shortens path to budget runes. 0 keeps the whole path, a
// positive budget keeps the tail and a negative one keeps the head. Paths
// that already fit are returned unchanged.
func TruncatePath(path string, budget int) string {
	if budget == 0 {
		return path
	}
	runes := []rune(path)
	n := budget
	if n < 0 {
		n = -n
	}
	if len(runes) <= n {
		return path
	}
	if budget > 0 {
		return string(runes[len(runes)-n:])
	}
	return string(runes[:n])
}

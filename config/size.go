package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a window dimension, either absolute pixels or a percentage of the
// monitor. In TOML it is an integer (pixels) or a string such as "40%".
type Size struct {
	Value   int
	Percent bool
}

// Pixels returns an absolute size
func Pixels(n int) Size { return Size{Value: n} }

// Percent returns a size relative to the monitor
func Percent(n int) Size { return Size{Value: n, Percent: true} }

// Resolve returns the size in pixels for a monitor extent
func (s Size) Resolve(extent int) int {
	if !s.Percent {
		return s.Value
	}
	return extent * s.Value / 100
}

func (s Size) String() string {
	if s.Percent {
		return strconv.Itoa(s.Value) + "%"
	}
	return strconv.Itoa(s.Value)
}

func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalTOML accepts integers and strings
func (s *Size) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case int64:
		if val <= 0 {
			return fmt.Errorf("size %d must be positive", val)
		}
		*s = Pixels(int(val))
		return nil
	case string:
		parsed, err := ParseSize(val)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("size: unsupported value %v (%T)", v, v)
	}
}

// ParseSize parses "800" or "40%"
func ParseSize(raw string) (Size, error) {
	raw = strings.TrimSpace(raw)
	percent := strings.HasSuffix(raw, "%")
	n, err := strconv.Atoi(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", raw, err)
	}
	if n <= 0 || (percent && n > 100) {
		return Size{}, fmt.Errorf("size %q out of range", raw)
	}
	return Size{Value: n, Percent: percent}, nil
}

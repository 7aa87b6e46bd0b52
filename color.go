package kwpdf

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseColor(s string) ([3]int, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return [3]int{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return [3]int{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgb[i] = int(v)
	}
	return rgb, nil
}

// FormatColor renders rgb as "#rrggbb".
func FormatColor(rgb [3]int) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

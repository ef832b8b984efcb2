package window

import (
	"fmt"
	"strings"
)

var nameByType = map[Type]string{
	TypeRectangular:    "rectangular",
	TypeHann:           "hann",
	TypeHamming:        "hamming",
	TypeBlackman:       "blackman",
	TypeBlackmanHarris: "blackmanharris",
	TypeFlatTop:        "flattop",
}

// Names returns the canonical names accepted by [Parse].
func Names() []string {
	return []string{"rectangular", "hann", "hamming", "blackman", "blackmanharris", "flattop"}
}

// String returns the canonical name of the window type.
func (t Type) String() string {
	if name, ok := nameByType[t]; ok {
		return name
	}

	return fmt.Sprintf("window.Type(%d)", int(t))
}

// Parse maps a window name to its [Type]. Matching is case-insensitive and
// ignores surrounding whitespace.
func Parse(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect":
		return TypeRectangular, nil
	case "hann":
		return TypeHann, nil
	case "hamming":
		return TypeHamming, nil
	case "blackman":
		return TypeBlackman, nil
	case "blackmanharris", "blackman-harris":
		return TypeBlackmanHarris, nil
	case "flattop", "flat-top":
		return TypeFlatTop, nil
	default:
		return 0, fmt.Errorf("unsupported window: %q", name)
	}
}

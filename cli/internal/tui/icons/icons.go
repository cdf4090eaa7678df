// ABOUTME: Glyphs for phases, vessels and status with a plain Unicode fallback
// ABOUTME: Nerd Font glyphs are used only when the terminal is known to render them

package icons

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// OverrideEnv forces Nerd Font glyphs on or off
const OverrideEnv = "SEPARATOR_NERD_FONTS"

// nerdTerminals render Nerd Font glyphs out of the box
var nerdTerminals = []string{"iterm", "wezterm", "kitty", "ghostty", "alacritty"}

var nerdFonts = sync.OnceValue(func() bool { return detect(os.Getenv) })

// detect decides from the environment whether to use Nerd Font glyphs
func detect(getenv func(string) string) bool {
	if v, err := strconv.ParseBool(getenv(OverrideEnv)); err == nil {
		return v
	}
	term := strings.ToLower(getenv("TERM_PROGRAM") + " " + getenv("TERM"))
	for _, name := range nerdTerminals {
		if strings.Contains(term, name) {
			return true
		}
	}
	return false
}

// Icon pairs a Nerd Font glyph with a Unicode fallback
type Icon struct {
	NerdFont string
	Fallback string
}

func (i Icon) String() string {
	if nerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	Gas   = Icon{"󰖝", "○"}
	Oil   = Icon{"󰈸", "●"}
	Water = Icon{"󰖌", "◌"}

	Vertical   = Icon{"󰝡", "▮"}
	Horizontal = Icon{"󰝠", "▬"}
	Sheet      = Icon{"󰈛", "▤"}

	CheckOK  = Icon{"", "✓"}
	Warning  = Icon{"", "⚠"}
	Critical = Icon{"", "✗"}

	Wizard = Icon{"󰂓", "★"}
	Quit   = Icon{"󰗼", "×"}
	App    = Icon{"󰡪", "◈"}
)

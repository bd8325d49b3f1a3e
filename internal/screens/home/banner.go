package home

import (
	"charm.land/lipgloss/v2"

	"github.com/XSaadiX/Quiz-app/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗
 ██╔═══██╗██║   ██║██║╚══███╔╝
 ██║   ██║██║   ██║██║  ███╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝
 ╚██████╔╝╚██████╔╝██║███████╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "Q U I Z"

// renderBanner returns the banner in the primary color, or a compact
// fallback for narrow or short areas.
func renderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 || height < 18 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

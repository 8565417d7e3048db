package cmn

import (
	"net/url"
	"os/exec"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

const ICON_3DOTS = "…"

// GetHostName returns the host of an origin url, or "" if it has none.
func GetHostName(u string) string {
	pu, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return pu.Hostname()
}

func ShortAddress(a common.Address) string {
	s := a.String()
	return s[:6] + ICON_3DOTS + s[len(s)-4:]
}

func OpenBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		log.Error().Msgf("OpenBrowser: unsupported platform %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Msgf("OpenBrowser: %s", url)
	}
}

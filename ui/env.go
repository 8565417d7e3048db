package ui

import (
	"github.com/AlexNa-Holdings/sigconfirm/analytics"
	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/locale"
	"github.com/atotto/clipboard"
)

var defaultSpawn = func(f func()) { go f() }

func DefaultEnv() Env {
	return Env{
		T:               locale.T,
		Track:           analytics.Track,
		OpenURL:         cmn.OpenBrowser,
		CopyToClipboard: clipboard.WriteAll,
		Notify: func(text string) {
			bus.Send("ui", "notify", text)
		},
		NotifyError: func(err error) {
			bus.Send("ui", "notify-error", err.Error())
		},
		HelpURL: cmn.Config.HelpURL,
	}
}

package ui

import (
	"fmt"
	"strconv"
	"strings"
)

type OverviewPage struct {
	requests RequestSource
	env      Env
	open     func(id int64)
}

func (p *OverviewPage) Template() string {
	t := p.env.T
	pending := p.requests.Pending()

	if len(pending) == 0 {
		return "\n<c><dim>" + t("nothingToConfirm") + "</dim>"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<c><b>%s</b></c>\n<line>\n", t("pendingRequests", len(pending)))
	for _, r := range pending {
		fmt.Fprintf(&sb, " %s %s <color fg:g.EmFgColor>%s</color> <l text:\"%s\" action:\"open %d\">\n",
			r.Time.Format("15:04:05"), r.Type, Escape(r.MsgParams.Origin), t("review"), r.ID)
	}
	return sb.String()
}

func (p *OverviewPage) OnClick(value string) {
	command, param, found := strings.Cut(value, " ")
	if !found || command != "open" {
		return
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return
	}
	p.open(id)
}

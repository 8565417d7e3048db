package ui

// DlgConfirm asks a yes/no question; action runs on OK only.
func DlgConfirm(title, text, okText, cancelText string, action func()) *Popup {
	return &Popup{
		Title: title,
		OnClickHotspot: func(value string) {
			switch value {
			case "button ok":
				if action != nil {
					action()
				}
				Gui.HidePopup()
			case "button cancel":
				Gui.HidePopup()
			}
		},
		Template: "<w>" + text + "</w>\n\n<c>" +
			`<button text:"` + okText + `" id:ok bgcolor:g.ErrorFgColor>  ` +
			`<button text:"` + cancelText + `" id:cancel>`,
	}
}

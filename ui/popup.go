package ui

type Popup struct {
	Title          string
	Template       string
	OnClickHotspot func(value string)
	OnClose        func()
}

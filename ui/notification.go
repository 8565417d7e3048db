package ui

import (
	"fmt"
	"time"
)

const NOTIFICATION_TIME = 3 * time.Second

type NotificationPane struct {
	On      bool
	Message string
	Error   bool
	hideAt  time.Time
}

var Notification *NotificationPane = &NotificationPane{}

func (n *NotificationPane) ShowEx(text string, err_flag bool) {
	Gui.UpdateAsync(func() {
		n.Message = text
		n.Error = err_flag
		n.On = true
		n.hideAt = time.Now().Add(NOTIFICATION_TIME)
	})

	time.AfterFunc(NOTIFICATION_TIME, func() {
		Gui.UpdateAsync(func() {
			if !time.Now().Before(n.hideAt) {
				n.On = false
			}
		})
	})
}

func (n *NotificationPane) Show(text string) {
	n.ShowEx(text, false)
}

func (n *NotificationPane) Showf(format string, args ...interface{}) {
	n.Show(fmt.Sprintf(format, args...))
}

func (n *NotificationPane) ShowError(text string) {
	n.ShowEx(text, true)
}

func (n *NotificationPane) ShowErrorf(format string, args ...interface{}) {
	n.ShowError(fmt.Sprintf(format, args...))
}

func (n *NotificationPane) Hide() {
	Gui.UpdateAsync(func() {
		n.On = false
	})
}

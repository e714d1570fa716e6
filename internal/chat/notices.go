package chat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Notice keys double as the untranslated English text.
const (
	noticeWelcome    = "Welcome to chat app!"
	noticeYouJoined  = "You have joined the room"
	noticeJoinedRoom = "%s has joined the room"
	noticeLeftRoom   = "%s has left the room"
	noticeLeftChat   = "User %s has left the chat"
)

// Notices renders the text of Admin announcements for one locale.
type Notices struct {
	printer *message.Printer
}

// NewNotices returns a Notices printing through the default message catalog.
func NewNotices(tag language.Tag) *Notices {
	return &Notices{printer: message.NewPrinter(tag)}
}

// Welcome greets a freshly opened connection.
func (n *Notices) Welcome() string {
	return n.printer.Sprintf(noticeWelcome)
}

// YouJoined confirms a join to the joining connection.
func (n *Notices) YouJoined() string {
	return n.printer.Sprintf(noticeYouJoined)
}

// JoinedRoom announces name to the rest of the room it entered.
func (n *Notices) JoinedRoom(name string) string {
	return n.printer.Sprintf(noticeJoinedRoom, name)
}

// LeftRoom announces that name switched away from the room.
func (n *Notices) LeftRoom(name string) string {
	return n.printer.Sprintf(noticeLeftRoom, name)
}

// LeftChat announces that name disconnected.
func (n *Notices) LeftChat(name string) string {
	return n.printer.Sprintf(noticeLeftChat, name)
}

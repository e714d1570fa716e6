package chat

import (
	"time"

	"golang.org/x/text/language"
)

// Envelope is an outbound chat message.
type Envelope struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// Builder stamps envelopes with the server's local wall-clock time.
type Builder struct {
	now    Clock
	layout string
	loc    *time.Location
}

// NewBuilder returns a Builder formatting times for tag in the local zone.
func NewBuilder(tag language.Tag) *Builder {
	return &Builder{
		now:    time.Now,
		layout: ClockLayout(tag),
		loc:    time.Local,
	}
}

// WithClock returns a copy of b that reads the time from now.
func (b *Builder) WithClock(now Clock) *Builder {
	cp := *b
	cp.now = now
	return &cp
}

// Build returns an envelope from sender carrying text.
func (b *Builder) Build(sender, text string) Envelope {
	return Envelope{
		Name: sender,
		Text: text,
		Time: b.now().In(b.loc).Format(b.layout),
	}
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLink struct {
	closed bool
}

func (l fakeLink) IsClosed() bool {
	return l.closed
}

func TestLinkOpen(t *testing.T) {
	tests := []struct {
		name          string
		connClosed    bool
		channelClosed bool
		want          bool
	}{
		{"both open", false, false, true},
		{"connection closed", true, false, false},
		{"only channel closed", false, true, false},
		{"both closed", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linkOpen(fakeLink{tt.connClosed}, fakeLink{tt.channelClosed}))
		})
	}
}

func TestAMQPPublisher_NotConnectedWithoutLink(t *testing.T) {
	p := &AMQPPublisher{exchange: "eventhire.events"}
	assert.False(t, p.IsConnected())
}

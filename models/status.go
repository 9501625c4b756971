package models

import "camwatch/enums"

// ChannelState is a single status observation returned by the
// origin-service adapter.
type ChannelState struct {
	Status     enums.ChannelStatus
	Gender     string
	Country    string
	StreamName string
}

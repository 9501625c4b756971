package enums

type ChannelStatus string

const (
	ChannelStatusPublic     ChannelStatus = "public"
	ChannelStatusPrivate    ChannelStatus = "private"
	ChannelStatusOffline    ChannelStatus = "offline"
	ChannelStatusRestricted ChannelStatus = "restricted"
	ChannelStatusNotFound   ChannelStatus = "not_found"
	ChannelStatusUnknown    ChannelStatus = "unknown"
)

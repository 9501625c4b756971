package models

import (
	"time"

	"camwatch/enums"

	"github.com/guregu/null/v6/zero"
)

type Channel struct {
	ID       uint   `gorm:"primarykey" json:"-"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	RoomID   string `gorm:"index" json:"room_id"`

	// VR selects the virtual-reality playlist variant of the stream.
	VR bool `gorm:"default:false" json:"vr"`

	Status      enums.ChannelStatus `gorm:"index;default:unknown" json:"status"`
	Gender      zero.String         `json:"gender"`
	Country     zero.String         `json:"country"`
	StreamName  zero.String         `json:"stream_name"`
	PlaylistURL zero.String         `json:"playlist_url"`

	LastSeenLive zero.Time `json:"last_seen_live"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (channel *Channel) IsWatchable() bool {
	return channel.Status == enums.ChannelStatusPublic &&
		channel.StreamName.Valid
}

func (channel *Channel) HostRole() enums.HostRole {
	if channel.VR {
		return enums.HostRoleVR
	}
	return enums.HostRoleLive
}

package monitor

import (
	"context"
	"time"

	"camwatch/config"
	"camwatch/database"
	"camwatch/enums"
	"camwatch/ext/stripchat"
	"camwatch/models"

	"github.com/guregu/null/v6/zero"
	"go.uber.org/zap"
)

// Monitor polls the registered channels, classifies their liveness and
// resolves a playable variant URL for the ones that are live.
type Monitor struct {
	client   *stripchat.Client
	interval time.Duration
}

func New(client *stripchat.Client) *Monitor {
	return &Monitor{
		client:   client,
		interval: config.Env.PollInterval,
	}
}

func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.pollOnce(ctx)
		}
	}
}

func (m *Monitor) pollOnce(ctx context.Context) {
	channels, err := database.GetChannels()
	if err != nil {
		zap.S().Errorf("failed to load channels: %v", err)
		return
	}
	if len(channels) == 0 {
		zap.S().Debug("no channels to poll")
		return
	}
	m.ensureRoomIDs(ctx, channels)
	states := m.collectStates(ctx, channels)
	for _, channel := range channels {
		state, ok := states[channel.Username]
		if !ok {
			continue
		}
		m.applyState(ctx, channel, state)
	}
}

func (m *Monitor) ensureRoomIDs(ctx context.Context, channels []*models.Channel) {
	for _, channel := range channels {
		if channel.RoomID != "" {
			continue
		}
		roomID, err := m.client.GetRoomID(ctx, channel.Username)
		if err != nil {
			zap.S().Warnf("failed to resolve room id for %s: %v", channel.Username, err)
			continue
		}
		channel.RoomID = roomID
		if err := database.SaveChannel(channel); err != nil {
			zap.S().Warnf("failed to store room id for %s: %v", channel.Username, err)
		}
	}
}

// collectStates prefers one bulk request for every channel with a known
// room id and falls back to per-channel lookups for the rest.
func (m *Monitor) collectStates(
	ctx context.Context,
	channels []*models.Channel,
) map[string]*models.ChannelState {
	states := make(map[string]*models.ChannelState, len(channels))

	if config.Env.BulkStatus {
		var bulk []*models.Channel
		for _, channel := range channels {
			if channel.RoomID != "" {
				bulk = append(bulk, channel)
			}
		}
		if len(bulk) > 0 {
			roomIDs := make([]string, 0, len(bulk))
			for _, channel := range bulk {
				roomIDs = append(roomIDs, channel.RoomID)
			}
			byRoom, err := m.client.GetChannelStatesBulk(ctx, roomIDs)
			if err != nil {
				zap.S().Warnf("bulk status failed: %v", err)
			}
			for _, channel := range bulk {
				if state, ok := byRoom[channel.RoomID]; ok {
					states[channel.Username] = state
				}
			}
		}
	}
	for _, channel := range channels {
		if _, ok := states[channel.Username]; ok {
			continue
		}
		state, err := m.client.GetChannelState(ctx, channel.Username)
		if err != nil {
			zap.S().Warnf("status lookup failed for %s: %v", channel.Username, err)
			continue
		}
		states[channel.Username] = state
	}
	return states
}

func (m *Monitor) applyState(
	ctx context.Context,
	channel *models.Channel,
	state *models.ChannelState,
) {
	wasLive := channel.Status == enums.ChannelStatusPublic
	channel.Status = state.Status
	if state.Gender != "" {
		channel.Gender = zero.StringFrom(state.Gender)
	}
	if state.Country != "" {
		channel.Country = zero.StringFrom(state.Country)
	}
	if state.StreamName != "" {
		channel.StreamName = zero.StringFrom(state.StreamName)
	}

	if channel.IsWatchable() {
		channel.LastSeenLive = zero.TimeFrom(time.Now())
		variants, err := m.client.PlaylistVariants(
			ctx, channel.StreamName.String, channel.HostRole(),
		)
		if err != nil {
			zap.S().Warnf("failed to resolve playlist for %s: %v", channel.Username, err)
			channel.PlaylistURL = zero.String{}
		} else if best := stripchat.BestVariant(variants); best != nil {
			channel.PlaylistURL = zero.StringFrom(best.URL)
			if !wasLive {
				zap.S().Infof("%s went live: %s", channel.Username, best.URL)
			}
		}
	} else {
		channel.PlaylistURL = zero.String{}
		if wasLive {
			zap.S().Infof("%s went offline (%s)", channel.Username, channel.Status)
		}
	}

	if err := database.SaveChannel(channel); err != nil {
		zap.S().Errorf("failed to save channel %s: %v", channel.Username, err)
	}
}

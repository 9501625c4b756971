package stripchat

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"camwatch/enums"
	"camwatch/models"
	"camwatch/util"

	"github.com/tidwall/gjson"
)

// GetChannelState fetches and classifies the live state of a single
// channel.
func (c *Client) GetChannelState(
	ctx context.Context,
	username string,
) (*models.ChannelState, error) {
	endpoint := fmt.Sprintf(
		"%s/v2/models/username/%s/cam?uniq=%s",
		apiBase, url.PathEscape(username), util.Uniq(uniqLength),
	)
	body, err := util.FetchText(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel status: %w", err)
	}
	return parseChannelState(body), nil
}

func parseChannelState(body string) *models.ChannelState {
	data := gjson.Parse(body)
	state := &models.ChannelState{Status: enums.ChannelStatusUnknown}

	if !data.Get("cam").Exists() {
		if data.Get("error").String() == "Not Found" {
			state.Status = enums.ChannelStatusNotFound
		}
		return state
	}

	model := data.Get("user.user")
	state.Gender = model.Get("gender").String()
	state.Country = model.Get("country").String()
	state.StreamName = data.Get("cam.streamName").String()

	camActive := data.Get("cam.isCamAvailable").Bool() &&
		data.Get("cam.isCamActive").Bool()
	state.Status = classifyStatus(
		model.Get("status").String(),
		camActive,
		model.Get("isDeleted").Bool(),
		data.Get("user.isGeoBanned").Bool(),
	)
	return state
}

func classifyStatus(
	status string,
	camActive bool,
	isDeleted bool,
	isGeoBanned bool,
) enums.ChannelStatus {
	switch {
	case status == "public" && camActive:
		return enums.ChannelStatusPublic
	case privateStatuses[status]:
		return enums.ChannelStatusPrivate
	case offlineStatuses[status]:
		return enums.ChannelStatusOffline
	case isDeleted:
		return enums.ChannelStatusNotFound
	case isGeoBanned:
		return enums.ChannelStatusRestricted
	default:
		return enums.ChannelStatusUnknown
	}
}

// GetRoomID resolves the numeric room id behind a username. The lookup
// works whether or not the channel is live.
func (c *Client) GetRoomID(
	ctx context.Context,
	username string,
) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/v2/models/username/%s/cam?uniq=%s",
		apiBase, url.PathEscape(username), util.Uniq(uniqLength),
	)
	body, err := util.FetchText(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel info: %w", err)
	}
	roomID := gjson.Get(body, "user.user.id").String()
	if roomID == "" || roomID == "0" {
		return "", util.ErrChannelNotFound
	}
	return roomID, nil
}

// GetChannelStatesBulk classifies many channels in one request, keyed
// by room id. Channels missing from the response map to unknown.
func (c *Client) GetChannelStatesBulk(
	ctx context.Context,
	roomIDs []string,
) (map[string]*models.ChannelState, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	params := make([]string, 0, len(roomIDs))
	for _, id := range roomIDs {
		params = append(params, "modelIds[]="+url.QueryEscape(id))
	}
	endpoint := bulkBase + "/models/list?" + strings.Join(params, "&")
	body, err := util.FetchText(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bulk status: %w", err)
	}
	return parseBulkStates(body, roomIDs), nil
}

func parseBulkStates(body string, roomIDs []string) map[string]*models.ChannelState {
	entries := make(map[string]gjson.Result)
	for _, model := range gjson.Get(body, "models").Array() {
		entries[model.Get("id").String()] = model
	}
	states := make(map[string]*models.ChannelState, len(roomIDs))
	for _, id := range roomIDs {
		model, ok := entries[id]
		if !ok {
			states[id] = &models.ChannelState{Status: enums.ChannelStatusUnknown}
			continue
		}
		states[id] = &models.ChannelState{
			Status: classifyStatus(
				model.Get("status").String(),
				model.Get("isOnline").Bool(),
				false, false,
			),
			Gender:     model.Get("gender").String(),
			Country:    model.Get("country").String(),
			StreamName: model.Get("streamName").String(),
		}
	}
	return states
}

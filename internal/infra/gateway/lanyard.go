package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"guildbadge/client"
	"guildbadge/internal/cache"
	"guildbadge/internal/domain"
)

// presenceDTO mirrors the presence service response envelope.
type presenceDTO struct {
	Success bool `json:"success"`
	Data    struct {
		DiscordUser struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Avatar   string `json:"avatar"`
		} `json:"discord_user"`
		DiscordStatus string `json:"discord_status"`
		Activities    []struct {
			Type  int    `json:"type"`
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"activities"`
	} `json:"data"`
}

// PresenceGateway resolves live account presence against the presence
// service, behind the response cache.
type PresenceGateway struct {
	conf   domain.Config
	client *client.Client
	store  *cache.Store
}

func NewPresenceGateway(conf domain.Config, cl *client.Client, store *cache.Store) *PresenceGateway {
	return &PresenceGateway{conf: conf, client: cl, store: store}
}

func (g *PresenceGateway) GetPresence(ctx context.Context, accountID string) (domain.Presence, error) {
	ctx, span := tracer.Start(ctx, "Gateway.Presence.GetPresence")
	defer span.End()

	presence, err := cache.GetOrFetch(g.store, cache.Key{Kind: "presence", ID: accountID}, g.conf.PresenceTTL,
		func() (domain.Presence, error) {
			return g.fetchPresence(ctx, accountID)
		})
	if err != nil {
		span.RecordError(err)
		return domain.Presence{}, err
	}
	return presence, nil
}

func (g *PresenceGateway) fetchPresence(ctx context.Context, accountID string) (domain.Presence, error) {

	endpoint := fmt.Sprintf("%s/users/%s", g.conf.PresenceBaseURL, url.PathEscape(accountID))

	var dto presenceDTO
	if err := g.client.GetJSON(ctx, client.ClassPresence, endpoint, false, &dto); err != nil {
		return domain.Presence{}, errors.Wrap(err, "presence lookup failed")
	}
	if !dto.Success {
		return domain.Presence{}, domain.NotFound("presence service does not know this account")
	}

	presence := domain.Presence{
		AccountID: dto.Data.DiscordUser.ID,
		Username:  dto.Data.DiscordUser.Username,
		Status:    dto.Data.DiscordStatus,
		AvatarURL: AvatarURL(g.conf.CDNBaseURL, dto.Data.DiscordUser.ID, dto.Data.DiscordUser.Avatar),
	}
	for _, a := range dto.Data.Activities {
		presence.Activities = append(presence.Activities, domain.Activity{
			Type:  a.Type,
			Name:  a.Name,
			State: a.State,
		})
	}
	return presence, nil
}

package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"guildbadge/client"
	"guildbadge/internal/cache"
	"guildbadge/internal/domain"
)

var tracer = otel.Tracer("gateway")

// inviteDTO mirrors the directory invite endpoint response.
type inviteDTO struct {
	Guild *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Icon string `json:"icon"`
	} `json:"guild"`
	ApproximateMemberCount   uint64 `json:"approximate_member_count"`
	ApproximatePresenceCount uint64 `json:"approximate_presence_count"`
}

// profileDTO mirrors the directory user endpoint response.
type profileDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// DirectoryGateway resolves invite codes and user profiles against the
// directory API, behind the response cache.
type DirectoryGateway struct {
	conf   domain.Config
	client *client.Client
	store  *cache.Store
}

func NewDirectoryGateway(conf domain.Config, cl *client.Client, store *cache.Store) *DirectoryGateway {
	return &DirectoryGateway{conf: conf, client: cl, store: store}
}

// HasCredential reports whether profile-by-id lookups are possible.
func (g *DirectoryGateway) HasCredential() bool {
	return g.conf.HasBotToken()
}

func (g *DirectoryGateway) LookupInvite(ctx context.Context, code string) (domain.InviteSummary, error) {
	ctx, span := tracer.Start(ctx, "Gateway.Directory.LookupInvite")
	defer span.End()

	summary, err := cache.GetOrFetch(g.store, cache.Key{Kind: "invite", ID: code}, g.conf.InviteTTL,
		func() (domain.InviteSummary, error) {
			return g.fetchInvite(ctx, code)
		})
	if err != nil {
		span.RecordError(err)
		return domain.InviteSummary{}, err
	}
	return summary, nil
}

func (g *DirectoryGateway) fetchInvite(ctx context.Context, code string) (domain.InviteSummary, error) {

	endpoint := fmt.Sprintf("%s/invites/%s?with_counts=true",
		g.conf.DirectoryBaseURL, url.PathEscape(code))

	var dto inviteDTO
	if err := g.client.GetJSON(ctx, client.ClassDirectory, endpoint, false, &dto); err != nil {
		return domain.InviteSummary{}, errors.Wrap(err, "invite lookup failed")
	}

	if dto.Guild == nil || dto.Guild.ID == "" {
		return domain.InviteSummary{}, domain.NotFound("invite carries no guild")
	}

	summary := domain.InviteSummary{
		GuildID:     dto.Guild.ID,
		Name:        dto.Guild.Name,
		MemberCount: dto.ApproximateMemberCount,
		OnlineCount: dto.ApproximatePresenceCount,
	}
	if dto.Guild.Icon != "" {
		summary.IconURL = fmt.Sprintf("%s/icons/%s/%s.png?size=64",
			g.conf.CDNBaseURL, dto.Guild.ID, dto.Guild.Icon)
	}
	return summary, nil
}

func (g *DirectoryGateway) GetProfile(ctx context.Context, accountID string) (domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Gateway.Directory.GetProfile")
	defer span.End()

	if !g.HasCredential() {
		return domain.Profile{}, domain.NotFound("no bot credential configured")
	}

	profile, err := cache.GetOrFetch(g.store, cache.Key{Kind: "user", ID: accountID}, g.conf.ProfileTTL,
		func() (domain.Profile, error) {
			return g.fetchProfile(ctx, accountID)
		})
	if err != nil {
		span.RecordError(err)
		return domain.Profile{}, err
	}
	return profile, nil
}

func (g *DirectoryGateway) fetchProfile(ctx context.Context, accountID string) (domain.Profile, error) {

	endpoint := fmt.Sprintf("%s/users/%s", g.conf.DirectoryBaseURL, url.PathEscape(accountID))

	var dto profileDTO
	if err := g.client.GetJSON(ctx, client.ClassDirectory, endpoint, true, &dto); err != nil {
		return domain.Profile{}, errors.Wrap(err, "profile lookup failed")
	}
	if dto.ID == "" {
		return domain.Profile{}, domain.NotFound("profile response carries no user")
	}

	return domain.Profile{
		ID:        dto.ID,
		Username:  dto.Username,
		AvatarURL: AvatarURL(g.conf.CDNBaseURL, dto.ID, dto.Avatar),
	}, nil
}

// AvatarURL builds the CDN URL for an avatar hash. Hashes prefixed
// with "a_" are animated and stored as gif.
func AvatarURL(cdnBase, accountID, hash string) string {
	if hash == "" {
		return ""
	}
	ext := "png"
	if strings.HasPrefix(hash, "a_") {
		ext = "gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s?size=64", cdnBase, accountID, hash, ext)
}

package usecase

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"

	"guildbadge"
	"guildbadge/internal/domain"
)

var tracer = otel.Tracer("usecase")

// Asset geometry shared with the renderer.
const (
	iconWidth        = 64
	avatarWidth      = 64
	backgroundWidth  = 300
	backgroundHeight = 100
	backgroundBlur   = 3
	backgroundDim    = 0.35
)

// Aggregator orchestrates one badge rendering: the directory lookup,
// the presence fallback chain per account, and every asset fetch.
type Aggregator struct {
	conf      domain.Config
	directory DirectoryService
	presence  PresenceService
	assets    AssetSource
}

func NewAggregator(
	conf domain.Config,
	directory DirectoryService,
	presence PresenceService,
	assets AssetSource,
) *Aggregator {
	return &Aggregator{
		conf:      conf,
		directory: directory,
		presence:  presence,
		assets:    assets,
	}
}

// Aggregate never fails: every resolution path degrades to a
// placeholder so the badge always renders.
func (a *Aggregator) Aggregate(ctx context.Context, req guildbadge.RenderRequest) guildbadge.AggregatedResult {
	ctx, span := tracer.Start(ctx, "Usecase.Aggregator.Aggregate")
	defer span.End()

	staffEntries, err := guildbadge.ParseStaffSpec(req.StaffSpec)
	if err != nil {
		slog.Warn("ignoring malformed staff spec", "spec", req.StaffSpec, "error", err)
		staffEntries = nil
	}

	result := guildbadge.AggregatedResult{
		Staff: make([]guildbadge.PresenceRecord, len(staffEntries)),
	}

	// Independent resolutions run concurrently; output order is fixed
	// by index, not completion order.
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Summary = a.resolveSummary(ctx, req.InviteCode)
	}()

	if req.OwnerAccountID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			owner := a.resolveAccount(ctx, req.OwnerAccountID, "Owner", "", true)
			result.Owner = &owner
		}()
	}

	for i, entry := range staffEntries {
		wg.Add(1)
		go func(i int, entry guildbadge.StaffEntry) {
			defer wg.Done()
			result.Staff[i] = a.resolveAccount(ctx, entry.AccountID, entry.RoleLabel, entry.ColorOverride, false)
		}(i, entry)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Background = a.resolveBackground(ctx, req.BackgroundURL)
	}()

	wg.Wait()
	return result
}

func (a *Aggregator) resolveSummary(ctx context.Context, inviteCode string) guildbadge.CommunitySummary {

	invite, err := a.directory.LookupInvite(ctx, inviteCode)
	if err != nil {
		return guildbadge.CommunitySummary{
			Found:       false,
			DisplayName: failureReason(err),
		}
	}

	summary := guildbadge.CommunitySummary{
		Found:       true,
		DisplayName: guildbadge.EscapeText(invite.Name),
		MemberCount: invite.MemberCount,
		OnlineCount: invite.OnlineCount,
		SourceID:    invite.GuildID,
	}
	if invite.IconURL != "" {
		summary.Icon = a.assets.Get(ctx, guildbadge.AssetRef{
			SourceURL: invite.IconURL,
			Transform: guildbadge.TransformSpec{TargetWidth: iconWidth},
		})
	}
	return summary
}

// resolveAccount runs the fallback chain: presence service first, then
// the directory profile lookup when a credential is configured. When
// neither succeeds the record keeps placeholder values.
func (a *Aggregator) resolveAccount(ctx context.Context, accountID, roleLabel string, override guildbadge.ColorToken, wantActivity bool) guildbadge.PresenceRecord {

	record := guildbadge.PresenceRecord{
		AccountID:   accountID,
		DisplayName: domain.UnknownDisplayName,
		RoleLabel:   guildbadge.EscapeText(roleLabel),
		StatusColor: guildbadge.ColorOffline,
		ResolvedVia: guildbadge.ResolvedUnresolved,
	}

	presence, err := a.presence.GetPresence(ctx, accountID)
	if err == nil {
		record.DisplayName = guildbadge.EscapeText(presence.Username)
		record.StatusColor = statusColor(presence.Status)
		record.ResolvedVia = guildbadge.ResolvedPresence
		if presence.AvatarURL != "" {
			record.Avatar = a.assets.Get(ctx, guildbadge.AssetRef{
				SourceURL: presence.AvatarURL,
				Transform: guildbadge.TransformSpec{TargetWidth: avatarWidth},
			})
		}
		if wantActivity {
			record.ActivityText = guildbadge.EscapeText(activityText(presence))
		}
	} else if a.directory.HasCredential() {
		profile, perr := a.directory.GetProfile(ctx, accountID)
		if perr == nil {
			record.DisplayName = guildbadge.EscapeText(profile.Username)
			record.ResolvedVia = guildbadge.ResolvedDirectoryFallback
			if profile.AvatarURL != "" {
				record.Avatar = a.assets.Get(ctx, guildbadge.AssetRef{
					SourceURL: profile.AvatarURL,
					Transform: guildbadge.TransformSpec{TargetWidth: avatarWidth},
				})
			}
		} else {
			slog.Warn("account unresolved", "account", accountID, "presence", err, "profile", perr)
		}
	} else {
		slog.Warn("account unresolved", "account", accountID, "presence", err)
	}

	if override != "" {
		record.StatusColor = override
	}
	return record
}

func (a *Aggregator) resolveBackground(ctx context.Context, backgroundURL string) guildbadge.EncodedAsset {

	if backgroundURL == "" {
		backgroundURL = a.conf.DefaultBackgroundURL
	}
	return a.assets.GetBackground(ctx, guildbadge.AssetRef{
		SourceURL: backgroundURL,
		Transform: guildbadge.TransformSpec{
			TargetWidth:  backgroundWidth,
			TargetHeight: backgroundHeight,
			BlurRadius:   backgroundBlur,
			DimFactor:    backgroundDim,
		},
	})
}

func statusColor(status string) guildbadge.ColorToken {
	switch status {
	case domain.StatusOnline:
		return guildbadge.ColorOnline
	case domain.StatusIdle:
		return guildbadge.ColorIdle
	case domain.StatusDnd:
		return guildbadge.ColorDnd
	default:
		return guildbadge.ColorOffline
	}
}

// activityText derives the display phrase from the first listed
// activity, falling back to the capitalized status word.
func activityText(p domain.Presence) string {
	if len(p.Activities) == 0 {
		return guildbadge.CapitalizeStatus(p.Status)
	}

	first := p.Activities[0]
	switch first.Type {
	case domain.ActivityTypeCustom:
		if first.State != "" {
			return first.State
		}
		return guildbadge.CapitalizeStatus(p.Status)
	case domain.ActivityTypeListening:
		return "Listening to " + first.Name
	default:
		return "Playing " + first.Name
	}
}

// failureReason maps a classified lookup failure to the human-readable
// line baked into the rendered badge.
func failureReason(err error) string {
	switch domain.KindOf(err) {
	case domain.KindRateLimited:
		return "Rate limited, try again later"
	case domain.KindNotFound:
		return "Invalid invite code"
	case domain.KindTransient:
		return "Directory unreachable"
	default:
		return domain.UnknownCommunity
	}
}

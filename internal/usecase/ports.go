package usecase

import (
	"context"

	"guildbadge"
	"guildbadge/internal/domain"
)

// DirectoryService resolves invite codes and user profiles against the
// directory API.
type DirectoryService interface {
	LookupInvite(ctx context.Context, code string) (domain.InviteSummary, error)
	GetProfile(ctx context.Context, accountID string) (domain.Profile, error)
	HasCredential() bool
}

// PresenceService reports the live status of a named account.
type PresenceService interface {
	GetPresence(ctx context.Context, accountID string) (domain.Presence, error)
}

// AssetSource produces inline-embeddable encoded assets. Both methods
// degrade to an empty asset instead of failing.
type AssetSource interface {
	Get(ctx context.Context, ref guildbadge.AssetRef) guildbadge.EncodedAsset
	GetBackground(ctx context.Context, ref guildbadge.AssetRef) guildbadge.EncodedAsset
}

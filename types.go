package guildbadge

// ColorToken is a literal color value embedded verbatim in the output
// document, e.g. "#43b581".
type ColorToken string

// Status colors used by the presence mapping and the renderer.
const (
	ColorOnline  ColorToken = "#43b581"
	ColorIdle    ColorToken = "#faa61a"
	ColorDnd     ColorToken = "#f04747"
	ColorOffline ColorToken = "#747f8d"
)

// ResolvedVia records which source produced a PresenceRecord.
type ResolvedVia int

const (
	ResolvedUnresolved ResolvedVia = iota
	ResolvedPresence
	ResolvedDirectoryFallback
)

// CommunitySummary is the result of one directory (invite) lookup.
// When Found is false, DisplayName carries a human-readable reason
// instead of a community name and the counts are zero.
type CommunitySummary struct {
	Found       bool
	DisplayName string
	MemberCount uint64
	OnlineCount uint64
	Icon        EncodedAsset
	SourceID    string
}

// PresenceRecord is the resolved state of one named account.
type PresenceRecord struct {
	AccountID    string
	DisplayName  string
	RoleLabel    string
	StatusColor  ColorToken
	ActivityText string
	Avatar       EncodedAsset
	ResolvedVia  ResolvedVia
}

// StaffEntry is one parsed element of a staff spec.
type StaffEntry struct {
	AccountID     string
	RoleLabel     string
	ColorOverride ColorToken
}

// TransformSpec describes the image transforms applied after download.
// TargetHeight of zero means preserve aspect ratio. BlurRadius of zero
// and DimFactor of zero disable the respective stage.
type TransformSpec struct {
	TargetWidth  int
	TargetHeight int
	BlurRadius   float64
	DimFactor    float64
}

// AssetRef identifies one transformed image.
type AssetRef struct {
	SourceURL string
	Transform TransformSpec
}

// EncodedAsset is a downloaded, transformed, re-encoded image ready for
// inline embedding. DataURI is empty when the source could not be
// fetched or decoded.
type EncodedAsset struct {
	DataURI string
	Width   int
	Height  int
}

// Empty reports whether the asset carries no payload.
func (a EncodedAsset) Empty() bool {
	return a.DataURI == ""
}

// RenderRequest is the validated input for one badge rendering.
type RenderRequest struct {
	InviteCode      string
	OwnerAccountID  string
	StaffSpec       string
	BackgroundURL   string
	TextColor       string
	BackgroundColor string
}

// AggregatedResult is everything the renderer needs to produce the
// final document. All free-text fields are already escaped.
type AggregatedResult struct {
	Summary    CommunitySummary
	Owner      *PresenceRecord
	Staff      []PresenceRecord
	Background EncodedAsset
}

package render

import (
	"strings"
	"testing"

	"guildbadge"
)

func sampleResult() guildbadge.AggregatedResult {
	return guildbadge.AggregatedResult{
		Summary: guildbadge.CommunitySummary{
			Found:       true,
			DisplayName: "Test Guild",
			MemberCount: 1500,
			OnlineCount: 120,
			Icon:        guildbadge.EncodedAsset{DataURI: "data:image/jpeg;base64,ICON", Width: 64, Height: 64},
		},
		Background: guildbadge.EncodedAsset{DataURI: "data:image/jpeg;base64,BG", Width: 300, Height: 100},
	}
}

func TestBadgeBasicDocument(t *testing.T) {
	doc := Badge(sampleResult(), Options{})

	for _, want := range []string{
		"Test Guild",
		">1.5k</tspan>",
		">120</tspan>",
		"data:image/jpeg;base64,ICON",
		"data:image/jpeg;base64,BG",
		`width="250"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestBadgeDeterministic(t *testing.T) {
	result := sampleResult()
	if Badge(result, Options{}) != Badge(result, Options{}) {
		t.Fatalf("renderer must be deterministic for a fixed input")
	}
}

func TestBadgeColorOverrides(t *testing.T) {
	doc := Badge(sampleResult(), Options{TextColor: "ff00ff", BackgroundColor: "000000"})
	if !strings.Contains(doc, "fill: #ff00ff") {
		t.Fatalf("text color override not applied")
	}
	if !strings.Contains(doc, `fill="#000000"`) {
		t.Fatalf("background color override not applied")
	}
}

func TestBadgeOwnerSection(t *testing.T) {
	result := sampleResult()
	result.Owner = &guildbadge.PresenceRecord{
		AccountID:    "42",
		DisplayName:  "owner",
		StatusColor:  guildbadge.ColorIdle,
		ActivityText: "Playing Factorio",
		Avatar:       guildbadge.EncodedAsset{DataURI: "data:image/jpeg;base64,AVA"},
	}

	doc := Badge(result, Options{})
	if !strings.Contains(doc, `width="300"`) {
		t.Fatalf("owner badge must widen the card")
	}
	if !strings.Contains(doc, "data:image/jpeg;base64,AVA") {
		t.Fatalf("owner avatar missing")
	}
	if !strings.Contains(doc, string(guildbadge.ColorIdle)) {
		t.Fatalf("status color missing")
	}
	if !strings.Contains(doc, "Playing Factorio") {
		t.Fatalf("activity text missing")
	}
}

func TestBadgeStaffRow(t *testing.T) {
	result := sampleResult()
	result.Staff = []guildbadge.PresenceRecord{
		{AccountID: "1", RoleLabel: "Admin", StatusColor: guildbadge.ColorOnline},
		{AccountID: "2", RoleLabel: "Mod", StatusColor: guildbadge.ColorDnd},
	}

	doc := Badge(result, Options{})
	if !strings.Contains(doc, `height="175"`) {
		t.Fatalf("staff row must extend the card height")
	}
	admin := strings.Index(doc, "Admin")
	mod := strings.Index(doc, "Mod")
	if admin < 0 || mod < 0 || admin > mod {
		t.Fatalf("staff labels missing or out of order (admin=%d mod=%d)", admin, mod)
	}
}

func TestBadgeNotFoundStillRenders(t *testing.T) {
	result := guildbadge.AggregatedResult{
		Summary: guildbadge.CommunitySummary{Found: false, DisplayName: "Invalid invite code"},
	}

	doc := Badge(result, Options{})
	if !strings.Contains(doc, "Invalid invite code") {
		t.Fatalf("reason line missing from document")
	}
	if !strings.Contains(doc, ">0</tspan>") {
		t.Fatalf("zero counts expected in placeholder badge")
	}
}

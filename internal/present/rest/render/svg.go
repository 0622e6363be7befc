package render

import (
	"fmt"
	"strings"

	"guildbadge"
)

// Options are the caller-supplied color overrides, hex digits without
// the leading '#'.
type Options struct {
	TextColor       string
	BackgroundColor string
}

const (
	baseWidth      = 250
	ownerExtra     = 50
	baseHeight     = 100
	staffRowHeight = 75
	staffSlot      = 70
)

// Badge assembles the final vector document from an aggregated result.
// The output is deterministic for a fixed input: same result, same
// options, byte-identical document.
func Badge(result guildbadge.AggregatedResult, opts Options) string {

	if opts.TextColor == "" {
		opts.TextColor = "ffffff"
	}
	if opts.BackgroundColor == "" {
		opts.BackgroundColor = "23272a"
	}

	width := baseWidth
	if result.Owner != nil {
		width += ownerExtra
	}
	height := baseHeight
	if len(result.Staff) > 0 {
		height += staffRowHeight
		if w := 40 + len(result.Staff)*staffSlot; w > width {
			width = w
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n",
		width, height, width, height)

	fmt.Fprintf(&b, `<style>
.text { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; fill: #%s; }
.title { font-weight: bold; font-size: 16px; }
.stat { font-size: 13px; font-weight: 600; fill: #888; }
.count { font-size: 13px; font-weight: bold; fill: #%s; }
.role { font-size: 11px; fill: #aaa; }
</style>`+"\n", opts.TextColor, opts.TextColor)

	fmt.Fprintf(&b, `<defs><clipPath id="card"><rect x="0" y="0" width="%d" height="%d" rx="15"/></clipPath><clipPath id="iconCircle"><circle cx="50" cy="50" r="30"/></clipPath></defs>`+"\n",
		width, height)

	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" rx="15" fill="#%s" stroke="#2c2f33" stroke-width="1"/>`+"\n",
		width, height, opts.BackgroundColor)

	if !result.Background.Empty() {
		fmt.Fprintf(&b, `<image x="0" y="0" width="%d" height="%d" href="%s" preserveAspectRatio="xMidYMid slice" clip-path="url(#card)"/>`+"\n",
			width, height, result.Background.DataURI)
	}

	if !result.Summary.Icon.Empty() {
		fmt.Fprintf(&b, `<image x="20" y="20" width="60" height="60" href="%s" clip-path="url(#iconCircle)"/>`+"\n",
			result.Summary.Icon.DataURI)
	}

	fmt.Fprintf(&b, `<text x="95" y="40" class="text title">%s</text>`+"\n", result.Summary.DisplayName)

	fmt.Fprintf(&b, `<circle cx="100" cy="65" r="5" fill="%s"/>`+"\n", guildbadge.ColorOnline)
	fmt.Fprintf(&b, `<text x="112" y="70" class="text stat">Online: <tspan class="count">%s</tspan></text>`+"\n",
		guildbadge.ShortenNumber(result.Summary.OnlineCount))

	fmt.Fprintf(&b, `<circle cx="100" cy="85" r="5" fill="%s"/>`+"\n", guildbadge.ColorOffline)
	fmt.Fprintf(&b, `<text x="112" y="90" class="text stat">Members: <tspan class="count">%s</tspan></text>`+"\n",
		guildbadge.ShortenNumber(result.Summary.MemberCount))

	if result.Owner != nil {
		writeOwner(&b, width, *result.Owner, opts)
	}

	for i, rec := range result.Staff {
		writeStaffBubble(&b, i, rec, opts)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeOwner(b *strings.Builder, width int, owner guildbadge.PresenceRecord, opts Options) {

	cx := width - 40

	if !owner.Avatar.Empty() {
		fmt.Fprintf(b, `<defs><pattern id="ownerAvatar" height="100%%" width="100%%" patternContentUnits="objectBoundingBox"><image href="%s" preserveAspectRatio="none" width="1" height="1"/></pattern></defs>`+"\n",
			owner.Avatar.DataURI)
		fmt.Fprintf(b, `<circle cx="%d" cy="45" r="24" fill="url(#ownerAvatar)"/>`+"\n", cx)
	} else {
		fmt.Fprintf(b, `<circle cx="%d" cy="45" r="24" fill="#2c2f33"/>`+"\n", cx)
	}
	fmt.Fprintf(b, `<circle cx="%d" cy="63" r="7" fill="%s" stroke="#%s" stroke-width="2"/>`+"\n",
		cx+17, owner.StatusColor, opts.BackgroundColor)

	if owner.ActivityText != "" {
		fmt.Fprintf(b, `<text x="%d" y="90" text-anchor="middle" class="text role">%s</text>`+"\n",
			cx, owner.ActivityText)
	}
}

func writeStaffBubble(b *strings.Builder, i int, rec guildbadge.PresenceRecord, opts Options) {

	cx := 50 + i*staffSlot
	cy := baseHeight + 30

	if !rec.Avatar.Empty() {
		fmt.Fprintf(b, `<defs><pattern id="staff%d" height="100%%" width="100%%" patternContentUnits="objectBoundingBox"><image href="%s" preserveAspectRatio="none" width="1" height="1"/></pattern></defs>`+"\n",
			i, rec.Avatar.DataURI)
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="22" fill="url(#staff%d)"/>`+"\n", cx, cy, i)
	} else {
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="22" fill="#2c2f33"/>`+"\n", cx, cy)
	}
	fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="6" fill="%s" stroke="#%s" stroke-width="2"/>`+"\n",
		cx+15, cy+15, rec.StatusColor, opts.BackgroundColor)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" class="text role">%s</text>`+"\n",
		cx, cy+38, rec.RoleLabel)
}

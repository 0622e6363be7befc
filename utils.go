package guildbadge

import (
	"fmt"
	"strconv"
	"strings"
)

// EscapeText entity-escapes characters that are significant in the
// output markup. Every free-text value pulled from an upstream source
// must pass through here before it reaches the renderer.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// ShortenNumber formats counts for display: 1500 -> "1.5k",
// 2500000 -> "2.5M", 999 -> "999". Anything that is not a number
// formats as "0".
func ShortenNumber(v any) string {
	var num float64
	switch n := v.(type) {
	case float64:
		num = n
	case float32:
		num = float64(n)
	case int:
		num = float64(n)
	case int64:
		num = float64(n)
	case uint64:
		num = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return "0"
		}
		num = parsed
	default:
		return "0"
	}

	if num >= 1000000 {
		return strconv.FormatFloat(num/1000000, 'f', 1, 64) + "M"
	}
	if num >= 1000 {
		return strconv.FormatFloat(num/1000, 'f', 1, 64) + "k"
	}
	return strconv.FormatInt(int64(num), 10)
}

// ParseStaffSpec parses a comma-separated staff list where each entry
// is accountId[:roleLabel[:colorOverride]]. Order is preserved and
// duplicates are kept as-is. Empty entries are skipped.
func ParseStaffSpec(spec string) ([]StaffEntry, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var entries []StaffEntry
	for _, raw := range strings.Split(spec, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		parts := strings.SplitN(raw, ":", 3)
		entry := StaffEntry{
			AccountID: strings.TrimSpace(parts[0]),
			RoleLabel: "Staff",
		}
		if entry.AccountID == "" {
			return nil, fmt.Errorf("staff entry %q has no account id", raw)
		}
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			entry.RoleLabel = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			entry.ColorOverride = ColorToken(strings.TrimSpace(parts[2]))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CapitalizeStatus turns a status word into its display form,
// e.g. "online" -> "Online".
func CapitalizeStatus(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

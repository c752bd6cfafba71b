package sources

import "strings"

const (
	// ConfigExcludeReblogsKey drops reblogs from status timelines.
	ConfigExcludeReblogsKey = "exclude_reblogs"
	// ConfigNotificationTypesKey restricts a notifications source to the listed types.
	ConfigNotificationTypesKey = "types"
)

// ConfigBool returns the boolean value for key from src.Config or a fallback.
func ConfigBool(src Source, key string, fallback bool) bool {
	if src.Config == nil {
		return fallback
	}
	if v, ok := src.Config[key].(bool); ok {
		return v
	}
	return fallback
}

// ConfigStrings returns the trimmed, lowercased, non-empty strings listed under key.
// A single string value is treated as a one-element list.
func ConfigStrings(src Source, key string) []string {
	if src.Config == nil {
		return nil
	}
	var raw []any
	switch v := src.Config[key].(type) {
	case string:
		raw = []any{v}
	case []any:
		raw = v
	case []string:
		for _, s := range v {
			raw = append(raw, s)
		}
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"statistics": {"📊", "[STATS]"},
	"signal":     {"📡", "[SIG]"},
	"button":     {"🔘", "[BTN]"},
	"parsed":     {"🏷️", "[PRS]"},
	"raw":        {"〰️", "[RAW]"},
	"bits":       {"🔢", "[BIT]"},
	"repeat":     {"🔁", "[RPT]"},
	"watch":      {"👀", "[WCH]"},
	"config":     {"⚙️", "[CFG]"},
	"file":       {"📄", "[FILE]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// ForKind returns the symbol for a button kind name ("parsed" or "raw")
func ForKind(kind string) string {
	switch kind {
	case "parsed":
		return GetEmoji("parsed")
	case "raw":
		return GetEmoji("raw")
	default:
		return GetEmoji("button")
	}
}

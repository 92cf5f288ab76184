package cli

import (
	"github.com/yildizm/irsum/internal/emoji"
	"github.com/yildizm/irsum/internal/parser"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetKindEmoji returns the symbol for a button kind
func GetKindEmoji(kind parser.Kind) string {
	return emoji.ForKind(kind.String())
}

package protocol

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// Colors is the palette participant colors are drawn from.
var Colors = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
	"#98D8C8",
	"#F7DC6F",
}

// Emojis is the set of reactions the server relays.
var Emojis = []string{
	"❤️",
	"🎉",
	"⭐",
	"💫",
	"🔥",
	"👍",
	"💯",
	"✨",
	"🚀",
	"💡",
	"🌈",
	"🥳",
	"🤩",
	"👏",
	"👋",
}

// IsAllowedEmoji reports whether emoji is in the reaction set.
func IsAllowedEmoji(emoji string) bool {
	return lo.Contains(Emojis, emoji)
}

// RandomColor picks a palette color uniformly at random.
func RandomColor() string {
	return lo.Sample(Colors)
}

// DefaultName returns a placeholder name of the form User1 to User9999.
func DefaultName() string {
	return fmt.Sprintf("User%d", rand.IntN(9999)+1)
}

package mood

// DefaultMood is used when neither keywords nor the model produce a label.
const DefaultMood = "chill"

// defaultEmoji is shown for labels without a dedicated emoji.
const defaultEmoji = "🎶"

// readableLabels maps raw classifier labels to user-facing adjectives.
var readableLabels = map[string]string{
	"joy":      "joyful",
	"anger":    "angry",
	"sadness":  "sad",
	"fear":     "anxious",
	"surprise": "surprised",
}

var emojis = map[string]string{
	"happy":      "😄",
	"joy":        "😊",
	"sad":        "😢",
	"anger":      "😠",
	"angry":      "😠",
	"calm":       "😌",
	"anxious":    "😰",
	"bored":      "😐",
	"excited":    "🤩",
	"tired":      "😴",
	"curious":    "🧐",
	"relaxed":    "🌿",
	"frustrated": "😤",
	"grateful":   "🙏",
	"peaceful":   "🕊️",
	"hopeful":    "🌈",
	"lonely":     "🥺",
	"energetic":  "⚡",
	"confused":   "😕",
	"impatient":  "⌛",
	"motivated":  "🔥",
	"chill":      "🎧",
}

// Readable translates a raw classifier label into the adjective shown to
// the user. Labels without a mapping are returned unchanged.
func Readable(label string) string {
	if r, ok := readableLabels[label]; ok {
		return r
	}
	return label
}

// Emoji returns the emoji for a raw label.
func Emoji(label string) string {
	if e, ok := emojis[label]; ok {
		return e
	}
	return defaultEmoji
}

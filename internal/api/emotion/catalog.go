package emotion

import (
	"HealGolang/internal/entity"
	"sort"
	"strings"
)

const DefaultFallbackSuggestion = "Stay positive and keep smiling! 🌸"

var defaultSuggestions = map[entity.Emotion]string{
	entity.Happy:    "Keep smiling! Spread your joy today 😊",
	entity.Surprise: "Wow! Take a moment to enjoy the unexpected 🌟",
	entity.Neutral:  "Stay calm and keep going, you’re doing fine 🙂",
	entity.Disgust:  "Shift your focus to something you love 🌈",
	entity.Sad:      "Take a deep breath... maybe try talking and sharing your feelings to our AI chatbot friend 💙",
	entity.Angry:    "Try relaxing your mind by listening to music and reading a magazine from our model 😌",
	entity.Fear:     "You are safe — focus on something comforting 🕊️",
}

// SuggestionCatalog maps emotion labels to suggestion text. It is never
// mutated after construction and is safe for concurrent use.
type SuggestionCatalog struct {
	entries  map[string]string
	fallback string
}

func NewSuggestionCatalog(entries map[string]string, fallback string) *SuggestionCatalog {
	c := &SuggestionCatalog{
		entries:  make(map[string]string, len(entries)),
		fallback: fallback,
	}
	for k, v := range entries {
		c.entries[normalizeLabel(k)] = v
	}
	return c
}

func DefaultSuggestionCatalog() *SuggestionCatalog {
	entries := make(map[string]string, len(defaultSuggestions))
	for k, v := range defaultSuggestions {
		entries[string(k)] = v
	}
	return NewSuggestionCatalog(entries, DefaultFallbackSuggestion)
}

func (c *SuggestionCatalog) SuggestionFor(emotion string) string {
	if s, ok := c.entries[normalizeLabel(emotion)]; ok {
		return s
	}
	return c.fallback
}

func (c *SuggestionCatalog) Fallback() string {
	return c.fallback
}

func (c *SuggestionCatalog) Labels() []string {
	labels := make([]string, 0, len(c.entries))
	for k := range c.entries {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

// Entries returns a copy of the mapping.
func (c *SuggestionCatalog) Entries() map[string]string {
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

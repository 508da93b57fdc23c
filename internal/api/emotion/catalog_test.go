package emotion

import (
	"HealGolang/internal/entity"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestionCatalog_CaseInsensitive(t *testing.T) {
	catalog := DefaultSuggestionCatalog()

	for _, label := range catalog.Labels() {
		t.Run(label, func(t *testing.T) {
			req := require.New(t)
			lower := catalog.SuggestionFor(label)
			req.Equal(lower, catalog.SuggestionFor(strings.ToUpper(label)))
			req.NotEqual(catalog.Fallback(), lower)
		})
	}
}

func TestSuggestionCatalog_Fallback(t *testing.T) {
	req := require.New(t)
	catalog := DefaultSuggestionCatalog()

	req.Equal(DefaultFallbackSuggestion, catalog.SuggestionFor("unmapped-xyz"))
	req.Equal(DefaultFallbackSuggestion, catalog.SuggestionFor(entity.UnknownEmotion))
	req.Equal(DefaultFallbackSuggestion, catalog.SuggestionFor(""))
}

func TestSuggestionCatalog_Contents(t *testing.T) {
	tests := []struct {
		description string
		label       string
		want        string
	}{
		{"happy", "happy", "Keep smiling! Spread your joy today 😊"},
		{"surprise", "surprise", "Wow! Take a moment to enjoy the unexpected 🌟"},
		{"neutral", "neutral", "Stay calm and keep going, you’re doing fine 🙂"},
		{"disgust", "disgust", "Shift your focus to something you love 🌈"},
		{"sad", "sad", "Take a deep breath... maybe try talking and sharing your feelings to our AI chatbot friend 💙"},
		{"angry", "angry", "Try relaxing your mind by listening to music and reading a magazine from our model 😌"},
		{"fear", "fear", "You are safe — focus on something comforting 🕊️"},
		{"fallback for unmapped label", "contempt", "Stay positive and keep smiling! 🌸"},
	}

	catalog := DefaultSuggestionCatalog()
	require.Len(t, catalog.Labels(), len(entity.KnownEmotions))
	require.Equal(t, "Stay positive and keep smiling! 🌸", catalog.Fallback())

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, catalog.SuggestionFor(tt.label))
		})
	}
}

func TestSuggestionCatalog_EntriesIsCopy(t *testing.T) {
	req := require.New(t)
	catalog := DefaultSuggestionCatalog()

	entries := catalog.Entries()
	entries["happy"] = "changed"

	req.Equal("Keep smiling! Spread your joy today 😊", catalog.SuggestionFor("happy"))
}

func TestNewDetectResponse(t *testing.T) {
	req := require.New(t)

	res := NewDetectResponse(entity.Unresolved(entity.ReasonStreamEnded))
	req.Equal(entity.UnknownEmotion, res.Emotion)
	req.Equal(NoEmotionMessage, res.Message)

	res = NewDetectResponse(entity.Resolved("sad", "hug"))
	req.Equal(DetectResponse{Emotion: "sad", Message: "hug"}, res)

	stream := NewStreamResult(entity.Unresolved(entity.ReasonCancelled))
	req.Equal(entity.StatusUnresolved, stream.Status)
	req.Equal("cancelled", stream.Reason)
}

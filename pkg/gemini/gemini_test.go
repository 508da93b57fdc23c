package gemini

import (
	"HealGolang/pkg/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmotion(t *testing.T) {
	tests := []struct {
		description string
		reply       string
		want        string
		wantErr     bool
	}{
		{
			description: "plain json",
			reply:       `{"dominant_emotion":"Happy","emotion":{"happy":90,"neutral":10}}`,
			want:        "happy",
		},
		{
			description: "fenced json",
			reply:       "```json\n{\"dominant_emotion\":\"sad\"}\n```",
			want:        "sad",
		},
		{
			description: "label derived from scores",
			reply:       `{"emotion":{"angry":0.2,"disgust":0.7}}`,
			want:        "disgust",
		},
		{
			description: "prose is rejected",
			reply:       "The person looks happy.",
			wantErr:     true,
		},
		{
			description: "no label and no scores",
			reply:       `{}`,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			res, err := parseEmotion(tt.reply)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, res.DominantEmotion)
		})
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(Config{}, utils.New())
	require.Error(t, err)
}

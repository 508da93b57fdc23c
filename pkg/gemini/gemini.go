package gemini

import (
	"HealGolang/internal/entity"
	"HealGolang/pkg/utils"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/google/generative-ai-go/genai"
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/api/option"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const emotionPrompt = `You are given a cropped photo of a single human face.
Classify the facial expression into exactly one of: happy, surprise, neutral, disgust, sad, angry, fear.
Always answer, even if the face is blurry, small or partly hidden.
Respond with JSON only, no prose, in this shape:
{"dominant_emotion": "<label>", "emotion": {"<label>": <score 0-100>, ...}}`

type IGemini interface {
	Classify(ctx context.Context, face image.Image) (*entity.EmotionResult, error)
	Close()
}

type Config struct {
	APIKey    string
	ModelName string
}

type geminiClient struct {
	modelName string
	client    *genai.Client
	utils     utils.IUtils
}

func NewGeminiClient(cfg Config, u utils.IUtils) (IGemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		modelName: modelName,
		client:    client,
		utils:     u,
	}, nil
}

func (g *geminiClient) Classify(ctx context.Context, face image.Image) (*entity.EmotionResult, error) {
	imgData, err := g.utils.EncodeJPEG(face)
	if err != nil {
		return nil, fmt.Errorf("error encoding face crop: %w", err)
	}

	model := g.client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"

	res, err := model.GenerateContent(ctx, genai.Text(emotionPrompt), genai.ImageData("jpeg", imgData))
	if err != nil {
		return nil, err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no response from Gemini API")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, errors.New("unexpected response format from Gemini API")
	}

	return parseEmotion(string(text))
}

// parseEmotion accepts the model reply with or without a markdown code fence.
func parseEmotion(text string) (*entity.EmotionResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result entity.EmotionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("invalid emotion reply from Gemini: %w", err)
	}

	result.DominantEmotion = strings.ToLower(strings.TrimSpace(result.DominantEmotion))
	if result.DominantEmotion == "" {
		result.DominantEmotion = result.Argmax()
	}
	if result.DominantEmotion == "" {
		return nil, errors.New("gemini reply has no emotion label")
	}

	return &result, nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

package emotion

import "HealGolang/internal/entity"

// NoEmotionMessage is shown when a session ends without a result.
const NoEmotionMessage = "No clear emotion detected. Try again in better lighting."

type DetectRequest struct {
	Profile string `query:"profile" validate:"omitempty,oneof=lax strict"`
}

type DetectResponse struct {
	Emotion string `json:"emotion"`
	Message string `json:"message"`
}

type SuggestionsResponse struct {
	Suggestions map[string]string `json:"suggestions"`
	Fallback    string            `json:"fallback"`
}

type StreamResult struct {
	Status  entity.SessionStatus `json:"status"`
	Emotion string               `json:"emotion"`
	Message string               `json:"message"`
	Reason  string               `json:"reason,omitempty"`
}

// NewDetectResponse projects an outcome to the synchronous web contract.
// Unresolved sessions are not errors for the caller.
func NewDetectResponse(outcome entity.SessionOutcome) DetectResponse {
	if !outcome.IsResolved() {
		return DetectResponse{Emotion: entity.UnknownEmotion, Message: NoEmotionMessage}
	}
	return DetectResponse{Emotion: outcome.Emotion, Message: outcome.Message}
}

func NewStreamResult(outcome entity.SessionOutcome) StreamResult {
	res := NewDetectResponse(outcome)
	return StreamResult{
		Status:  outcome.Status,
		Emotion: res.Emotion,
		Message: res.Message,
		Reason:  outcome.Reason,
	}
}

package model

// TurnInput is the public input of one dialogue turn processed by the graph.
type TurnInput struct {
	ConversationID string `json:"conversation_id"`
	Utterance      string `json:"utterance"`
}

// TurnState stores per-invocation state for the turn graph.
// It is registered as graph local state and accessed only inside state
// handlers or compose.ProcessState, which serialize access.
type TurnState struct {
	ConversationID string
	Utterance      string
}

// TurnContext is handed from the extractor node to the step handler nodes.
// State is the merged snapshot the handler should advance; Extraction is
// this turn's parse result.
type TurnContext struct {
	ConversationID string
	Utterance      string
	Extraction     ExtractionResult
	State          ConversationState
}

// TurnResult is the outcome of a step handler: the advanced state to persist
// and the ordered messages to hand back to the UI.
type TurnResult struct {
	State    ConversationState
	Messages []*Message
}

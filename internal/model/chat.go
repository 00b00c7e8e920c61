package model

// ChatStage is the current stage of an inbox chat session.
// The flow only ever moves forward: name -> email -> message -> sent.
type ChatStage string

const (
	StageCollectingName    ChatStage = "collecting-name"
	StageCollectingEmail   ChatStage = "collecting-email"
	StageCollectingMessage ChatStage = "collecting-message"
	StageSent              ChatStage = "sent"
)

// Chat transcript senders.
const (
	SenderBot     = "bot"
	SenderVisitor = "visitor"
)

// ChatMessage is one entry of a chat session transcript.
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

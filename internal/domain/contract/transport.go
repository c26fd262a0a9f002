package contract

// MessageTransport is the chat-delivery capability the core depends on.
// The Telegram implementation lives in internal/transport/telegram; tests
// use the generated mock.
type MessageTransport interface {
	// SendText sends a single message. topicID selects a forum topic when
	// non-zero.
	SendText(chatID, topicID int64, text string) error

	// SendLongText splits text into chunks of at most chunkSize, preferring
	// to cut at line boundaries, and sends them in order.
	SendLongText(chatID, topicID int64, text string, chunkSize int) error

	// FetchUploadedFile downloads a file uploaded to the chat network.
	FetchUploadedFile(fileID string) ([]byte, error)

	// NotifyOwner delivers an operator notification on a best-effort basis.
	NotifyOwner(text string)
}

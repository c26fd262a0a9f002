package telegram

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client implements contract.MessageTransport on top of the Telegram Bot
// API. Messages are sent through MakeRequest rather than the typed configs
// so that forum-topic posts can carry message_thread_id.
type Client struct {
	api     *tgbotapi.BotAPI
	ownerID int64
}

func New(api *tgbotapi.BotAPI, ownerID int64) *Client {
	return &Client{api: api, ownerID: ownerID}
}

func (c *Client) SendText(chatID, topicID int64, text string) error {
	params := tgbotapi.Params{}
	params.AddNonEmpty("chat_id", strconv.FormatInt(chatID, 10))
	params.AddNonEmpty("text", text)
	params.AddBool("disable_web_page_preview", true)
	if topicID != 0 {
		params.AddNonEmpty("message_thread_id", strconv.FormatInt(topicID, 10))
	}

	if _, err := c.api.MakeRequest("sendMessage", params); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}

	return nil
}

func (c *Client) SendLongText(chatID, topicID int64, text string, chunkSize int) error {
	for _, chunk := range SplitMessage(text, chunkSize) {
		if err := c.SendText(chatID, topicID, chunk); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) FetchUploadedFile(fileID string) ([]byte, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file %s: HTTP %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	return data, nil
}

// NotifyOwner sends an operator notification to the configured owner chat.
// Best effort: failures are logged, never propagated.
func (c *Client) NotifyOwner(text string) {
	if c.ownerID == 0 {
		return
	}
	if err := c.SendText(c.ownerID, 0, text); err != nil {
		log.Printf("Failed to notify owner: %v", err)
	}
}

// SplitMessage splits text into chunks of at most chunkSize bytes,
// preferring to cut at the last line boundary before the limit so that
// roster subsections stay intact.
func SplitMessage(text string, chunkSize int) []string {
	if chunkSize <= 0 || len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(text); {
		length := chunkSize
		if i+length > len(text) {
			length = len(text) - i
		}
		if i+length < len(text) {
			if cut := lastNewline(text, i, i+length); cut > i {
				length = cut - i + 1
			} else {
				// no usable line break; back off to a rune boundary
				for length > 1 && !utf8.RuneStart(text[i+length]) {
					length--
				}
			}
		}
		chunks = append(chunks, text[i:i+length])
		i += length
	}

	return chunks
}

func lastNewline(s string, from, to int) int {
	for i := to; i >= from; i-- {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}

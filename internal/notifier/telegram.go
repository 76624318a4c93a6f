package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Rabscootle/internal/logger"
	"Rabscootle/internal/model"
)

// DefaultAPIURL is the public Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// TelegramNotifier talks to the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string // default chat for scheduled posts
	BaseURL  string
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		BaseURL:  DefaultAPIURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(t.BaseURL, "/"), t.BotToken, method)
}

// call posts a JSON payload to a Bot API method.
func (t *TelegramNotifier) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(method), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, method)
}

func (t *TelegramNotifier) do(req *http.Request, method string) error {
	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram %s error: status %d, body: %s", method, resp.StatusCode, string(respBody))
	}
	return nil
}

// GetMe returns the bot's own username.
func (t *TelegramNotifier) GetMe(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint("getMe"), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("getMe: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool         `json:"ok"`
		Description string       `json:"description"`
		Result      telegramUser `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode getMe response: %w", err)
	}
	if !result.OK || result.Result.Username == "" {
		return "", fmt.Errorf("getMe: %s", result.Description)
	}
	return result.Result.Username, nil
}

// Send sends an HTML message to chatID.
func (t *TelegramNotifier) Send(ctx context.Context, chatID, text string) error {
	return t.call(ctx, "sendMessage", map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}

// SendPhoto sends a photo by URL with an HTML caption.
func (t *TelegramNotifier) SendPhoto(ctx context.Context, chatID, photoURL, caption string) error {
	return t.call(ctx, "sendPhoto", map[string]string{
		"chat_id":    chatID,
		"photo":      photoURL,
		"caption":    caption,
		"parse_mode": "HTML",
	})
}

// SendPhotoBytes uploads a photo file with an HTML caption.
func (t *TelegramNotifier) SendPhotoBytes(ctx context.Context, chatID, name string, data []byte, caption string) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{"chat_id": chatID, "caption": caption, "parse_mode": "HTML"} {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	fw, err := mw.CreateFormFile("photo", name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint("sendPhoto"), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return t.do(req, "sendPhoto")
}

// SendReply delivers a command reply, choosing the API call by content.
func (t *TelegramNotifier) SendReply(ctx context.Context, chatID string, reply *model.Reply) error {
	if reply == nil {
		return nil
	}
	text := FormatReply(reply)
	switch {
	case reply.Embed != nil && reply.Embed.Image != "":
		return t.SendPhoto(ctx, chatID, reply.Embed.Image, text)
	case reply.Embed != nil && reply.Embed.Thumbnail != "":
		return t.SendPhoto(ctx, chatID, reply.Embed.Thumbnail, text)
	case reply.Attachment != nil:
		return t.SendPhotoBytes(ctx, chatID, reply.Attachment.Name, reply.Attachment.Data, text)
	case text != "":
		return t.Send(ctx, chatID, text)
	}
	return nil
}

// SendWithRetry delivers a reply with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, chatID string, reply *model.Reply, maxRetries int) error {
	log := logger.New("telegram")
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := t.SendReply(ctx, chatID, reply); err != nil {
			lastErr = err
			if i == maxRetries {
				break
			}
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Warnf("send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// inlineArticle is an InlineQueryResultArticle.
type inlineArticle struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content struct {
		MessageText string `json:"message_text"`
	} `json:"input_message_content"`
}

// AnswerInlineQuery offers choices as articles; picking one posts
// "/<command> <value>" to the chat.
func (t *TelegramNotifier) AnswerInlineQuery(ctx context.Context, queryID, command string, choices []model.Choice) error {
	results := make([]inlineArticle, len(choices))
	for i, c := range choices {
		results[i] = inlineArticle{Type: "article", ID: fmt.Sprint(i), Title: c.Name}
		results[i].Content.MessageText = "/" + command + " " + c.Value
	}
	return t.call(ctx, "answerInlineQuery", map[string]any{
		"inline_query_id": queryID,
		"results":         results,
		"cache_time":      0,
	})
}

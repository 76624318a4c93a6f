package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"Rabscootle/internal/logger"
)

// Message is an incoming chat message.
type Message struct {
	ChatID  string
	User    string
	Text    string
	Private bool // one-to-one chat with the bot
}

// InlineQuery is an incoming autocomplete request typed after @botname.
type InlineQuery struct {
	ID    string
	User  string
	Query string
}

// UpdateHandler receives decoded updates. Each call runs in its own goroutine.
type UpdateHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandleInlineQuery(ctx context.Context, q InlineQuery)
}

type telegramUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

func (u *telegramUser) name() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string        `json:"text"`
		From *telegramUser `json:"from"`
		Chat struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"chat"`
	} `json:"message"`
	InlineQuery *struct {
		ID    string        `json:"id"`
		Query string        `json:"query"`
		From  *telegramUser `json:"from"`
	} `json:"inline_query"`
}

// StartPolling begins long-polling for updates. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler UpdateHandler) {
	log := logger.New("telegram")
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			log.Info("polling stopped")
			return
		default:
		}

		updates, err := t.getUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warnf("polling request failed: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			t.dispatch(ctx, handler, update)
		}
	}
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30&allowed_updates=%s",
		t.endpoint("getUpdates"), offset, `["message","inline_query"]`)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}

	var result struct {
		OK          bool             `json:"ok"`
		Description string           `json:"description"`
		Result      []telegramUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("getUpdates: %s", result.Description)
	}
	return result.Result, nil
}

func (t *TelegramNotifier) dispatch(ctx context.Context, handler UpdateHandler, update telegramUpdate) {
	switch {
	case update.Message != nil && update.Message.Text != "":
		msg := Message{
			ChatID:  strconv.FormatInt(update.Message.Chat.ID, 10),
			User:    update.Message.From.name(),
			Text:    strings.TrimSpace(update.Message.Text),
			Private: update.Message.Chat.Type == "private",
		}
		go handler.HandleMessage(ctx, msg)
	case update.InlineQuery != nil:
		q := InlineQuery{
			ID:    update.InlineQuery.ID,
			User:  update.InlineQuery.From.name(),
			Query: update.InlineQuery.Query,
		}
		go handler.HandleInlineQuery(ctx, q)
	}
}

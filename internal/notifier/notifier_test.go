package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Rabscootle/internal/model"
)

type apiCall struct {
	Method      string
	ContentType string
	Body        []byte
}

// fakeAPI records every Bot API call it receives.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	status int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{
		Method:      r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:],
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	status := f.status
	f.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
}

func (f *fakeAPI) last(t *testing.T) apiCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func newTestNotifier(t *testing.T, api http.Handler) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = srv.URL
	return tn
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestSend(t *testing.T) {
	api := &fakeAPI{}
	tn := newTestNotifier(t, api)

	require.NoError(t, tn.Send(context.Background(), "7", "<b>hi</b>"))
	call := api.last(t)
	assert.Equal(t, "sendMessage", call.Method)
	payload := decode(t, call.Body)
	assert.Equal(t, "7", payload["chat_id"])
	assert.Equal(t, "<b>hi</b>", payload["text"])
	assert.Equal(t, "HTML", payload["parse_mode"])
}

func TestSendError(t *testing.T) {
	api := &fakeAPI{status: http.StatusBadRequest}
	tn := newTestNotifier(t, api)

	err := tn.Send(context.Background(), "7", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestSendReplyRouting(t *testing.T) {
	tests := []struct {
		name   string
		reply  *model.Reply
		method string
	}{
		{"content", &model.Reply{Content: "https://cdn.example/a.gif"}, "sendMessage"},
		{"image embed", &model.Reply{Embed: &model.Embed{Title: "a", Image: "https://cdn.example/a.gif"}}, "sendPhoto"},
		{"thumbnail embed", &model.Reply{Embed: &model.Embed{Title: "BTC", Thumbnail: "https://img.example/c.png"}}, "sendPhoto"},
		{"attachment", &model.Reply{Embed: &model.Embed{Title: "BTC"}, Attachment: &model.Attachment{Name: "c.png", Data: []byte("png")}}, "sendPhoto"},
		{"plain embed", &model.Reply{Embed: &model.Embed{Title: "BTC"}}, "sendMessage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			tn := newTestNotifier(t, api)
			require.NoError(t, tn.SendReply(context.Background(), "7", tt.reply))
			assert.Equal(t, tt.method, api.last(t).Method)
		})
	}
}

func TestSendReplyNothingToSend(t *testing.T) {
	api := &fakeAPI{}
	tn := newTestNotifier(t, api)
	require.NoError(t, tn.SendReply(context.Background(), "7", nil))
	require.NoError(t, tn.SendReply(context.Background(), "7", &model.Reply{}))
	assert.Empty(t, api.calls)
}

func TestSendPhotoBytesMultipart(t *testing.T) {
	var gotName, gotChat string
	var gotData []byte
	tn := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotChat = r.FormValue("chat_id")
		f, hdr, err := r.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()
		gotName = hdr.Filename
		gotData, _ = io.ReadAll(f)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	require.NoError(t, tn.SendPhotoBytes(context.Background(), "7", "btcusd-1.png", []byte{1, 2, 3}, "<b>BTC</b>"))
	assert.Equal(t, "7", gotChat)
	assert.Equal(t, "btcusd-1.png", gotName)
	assert.Equal(t, []byte{1, 2, 3}, gotData)
}

func TestAnswerInlineQuery(t *testing.T) {
	api := &fakeAPI{}
	tn := newTestNotifier(t, api)

	choices := []model.Choice{{Name: "Bitcoin", Value: "btcusd"}, {Name: "Ethereum", Value: "ethusd"}}
	require.NoError(t, tn.AnswerInlineQuery(context.Background(), "q1", "crypto", choices))

	call := api.last(t)
	assert.Equal(t, "answerInlineQuery", call.Method)
	var payload struct {
		ID      string          `json:"inline_query_id"`
		Results []inlineArticle `json:"results"`
	}
	require.NoError(t, json.Unmarshal(call.Body, &payload))
	assert.Equal(t, "q1", payload.ID)
	require.Len(t, payload.Results, 2)
	assert.Equal(t, "Ethereum", payload.Results[1].Title)
	assert.Equal(t, "/crypto ethusd", payload.Results[1].Content.MessageText)
	assert.NotEqual(t, payload.Results[0].ID, payload.Results[1].ID)
}

func TestSendWithRetryCancelled(t *testing.T) {
	api := &fakeAPI{status: http.StatusInternalServerError}
	tn := newTestNotifier(t, api)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := tn.SendWithRetry(ctx, "7", &model.Reply{Content: "hi"}, 3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSendWithRetryNoWaitAfterLastAttempt(t *testing.T) {
	api := &fakeAPI{status: http.StatusInternalServerError}
	tn := newTestNotifier(t, api)

	start := time.Now()
	err := tn.SendWithRetry(context.Background(), "7", &model.Reply{Content: "hi"}, 1)
	elapsed := time.Since(start)

	require.ErrorContains(t, err, "all 2 retries exhausted")
	assert.Len(t, api.calls, 2)
	// One 1s backoff between the attempts, none after the last.
	assert.Less(t, elapsed, 1900*time.Millisecond)

	start = time.Now()
	require.Error(t, tn.SendWithRetry(context.Background(), "7", &model.Reply{Content: "hi"}, 0))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestGetMe(t *testing.T) {
	tn := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/botTOKEN/getMe"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"username":"RabscootleBot"}}`))
	}))
	name, err := tn.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RabscootleBot", name)

	tn = newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	_, err = tn.GetMe(context.Background())
	assert.ErrorContains(t, err, "Unauthorized")
}

func TestFormatReply(t *testing.T) {
	assert.Equal(t, "", FormatReply(nil))
	assert.Equal(t, "a &lt;b&gt;", FormatReply(&model.Reply{Content: "a <b>"}))

	got := FormatReply(&model.Reply{Embed: &model.Embed{
		Title:  "Bitcoin (BTC)",
		URL:    "https://cryptowat.ch/charts/KRAKEN:BTC-USD",
		Fields: []model.EmbedField{{Name: "Price", Value: "43123.46$"}},
		Footer: "will it rain?",
	}})
	assert.Equal(t, "<a href=\"https://cryptowat.ch/charts/KRAKEN:BTC-USD\"><b>Bitcoin (BTC)</b></a>\n\n"+
		"<b>Price:</b> 43123.46$\n\n<i>will it rain?</i>", got)

	got = FormatReply(&model.Reply{Content: "hey", Embed: &model.Embed{Title: "t"}})
	assert.Equal(t, "hey\n\n<b>t</b>", got)
}

func TestFormatHelp(t *testing.T) {
	got := FormatHelp([]HelpEntry{
		{Name: "crypto", Usage: "<coin>", Description: "Price and chart"},
		{Name: "8pepe", Description: "Ask the pepe"},
	})
	assert.Equal(t, "<b>Available commands:</b>\n• /crypto &lt;coin&gt; - Price and chart\n• /8pepe - Ask the pepe", got)
}

type recordingHandler struct {
	messages chan Message
	queries  chan InlineQuery
}

func (h *recordingHandler) HandleMessage(_ context.Context, m Message)         { h.messages <- m }
func (h *recordingHandler) HandleInlineQuery(_ context.Context, q InlineQuery) { h.queries <- q }

func TestStartPollingDispatches(t *testing.T) {
	var served sync.Once
	tn := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first := false
		served.Do(func() { first = true })
		if !first {
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":1,"message":{"text":" /crypto btc ","from":{"username":"alice"},"chat":{"id":-1001,"type":"supergroup"}}},
			{"update_id":2,"message":{"text":"/8pepe","from":{"username":"carol"},"chat":{"id":77,"type":"private"}}},
			{"update_id":3,"inline_query":{"id":"iq","query":"crypto et","from":{"first_name":"Bob"}}},
			{"update_id":4,"message":{"chat":{"id":5}}}
		]}`))
	}))

	h := &recordingHandler{messages: make(chan Message, 4), queries: make(chan InlineQuery, 4)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tn.StartPolling(ctx, h)

	got := map[string]Message{}
	for len(got) < 2 {
		select {
		case m := <-h.messages:
			got[m.ChatID] = m
		case <-time.After(2 * time.Second):
			t.Fatal("messages not dispatched")
		}
	}
	assert.Equal(t, Message{ChatID: "-1001", User: "alice", Text: "/crypto btc"}, got["-1001"])
	assert.Equal(t, Message{ChatID: "77", User: "carol", Text: "/8pepe", Private: true}, got["77"])
	select {
	case q := <-h.queries:
		assert.Equal(t, InlineQuery{ID: "iq", User: "Bob", Query: "crypto et"}, q)
	case <-time.After(2 * time.Second):
		t.Fatal("no inline query dispatched")
	}
	assert.Empty(t, h.messages)
}

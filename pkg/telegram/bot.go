package telegram

import (
	"fmt"
	"net/http"
	"net/url"
)

// Notifier pushes check-in notifications to a single admin chat.
// A disabled notifier swallows every message.
type Notifier struct {
	baseURL string
	chatID  string
	enabled bool
}

func NewNotifier(token, chatID string, enabled bool) *Notifier {
	return &Notifier{
		baseURL: "https://api.telegram.org/bot" + token,
		chatID:  chatID,
		enabled: enabled && token != "" && chatID != "",
	}
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

func (n *Notifier) Notify(text string) error {
	if !n.enabled {
		return nil
	}

	endpoint := n.baseURL + "/sendMessage"

	params := url.Values{}
	params.Add("chat_id", n.chatID)
	params.Add("text", text)

	resp, err := http.PostForm(endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}

// Package notifier tells the mail-notifier service that a receipt is ready.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/notasmx/notas-service/internal/port"
)

const requestTimeout = 5 * time.Second

type mailNotifier struct {
	client  *http.Client
	baseURL string
}

func New(baseURL string) port.Notifier {
	return &mailNotifier{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *mailNotifier) NotaCreated(ctx context.Context, notification port.NotaNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/notify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail-notifier returned status %d", resp.StatusCode)
	}

	return nil
}

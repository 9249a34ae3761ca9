package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Classifier is the hate-speech collaborator. Callers decide the fail-open
// policy themselves; Classify only reports transport errors.
type Classifier interface {
	Classify(ctx context.Context, text string) (bool, error)
}

type httpClassifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClassifier(baseURL string, timeout time.Duration) Classifier {
	return &httpClassifier{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (c *httpClassifier) Classify(ctx context.Context, text string) (bool, error) {
	payload := map[string]string{"text": text}
	var resp struct {
		IsHate int `json:"is_hate"`
	}
	if err := c.post(ctx, "/predict", payload, &resp); err != nil {
		return false, err
	}
	return resp.IsHate == 1, nil
}

func (c *httpClassifier) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	op := func() error {
		body, err := json.Marshal(payload)
		if err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", c.baseURL, path), bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		res, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.StatusCode >= 400 {
			return fmt.Errorf("classifier error: %d", res.StatusCode)
		}
		if out != nil {
			if err := json.NewDecoder(res.Body).Decode(out); err != nil {
				return backoff.Permanent(err)
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = 2 * time.Second
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

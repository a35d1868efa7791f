package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// RemoteEngine delegates image recognition to an external OCR service.
type RemoteEngine struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteEngine(baseURL string, timeout time.Duration) *RemoteEngine {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &RemoteEngine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (r *RemoteEngine) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	payload := map[string]any{
		"filename": filename,
		"image":    base64.StdEncoding.EncodeToString(data),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "marshal ocr request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/recognize", bytes.NewReader(body))
	if err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "create ocr request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", domain.WrapError(domain.ErrEngineUnavailable, "call ocr service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", remoteStatusError(resp)
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "decode ocr response", err)
	}
	return strings.TrimSpace(decoded.Text), nil
}

func remoteStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))

	err := fmt.Errorf("ocr service status: %s", resp.Status)
	if msg != "" {
		err = fmt.Errorf("ocr service status: %s: %s", resp.Status, msg)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.WrapError(domain.ErrEngineUnavailable, "call ocr service", err)
	}
	return domain.WrapError(domain.ErrRecognitionFailed, "call ocr service", err)
}

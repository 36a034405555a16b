package cloudstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	dropboxAPIURL     = "https://api.dropboxapi.com/2"
	dropboxContentURL = "https://content.dropboxapi.com/2"
)

// Dropbox is a FileStore backed by the Dropbox HTTP API v2.
type Dropbox struct {
	token      string
	root       string
	apiURL     string
	contentURL string
	httpClient *http.Client
}

// DropboxOption configures a Dropbox store.
type DropboxOption func(*Dropbox)

// WithRoot lists from a folder other than the app folder root.
func WithRoot(root string) DropboxOption {
	return func(d *Dropbox) {
		root = strings.TrimRight(root, "/")
		if root != "" && !strings.HasPrefix(root, "/") {
			root = "/" + root
		}
		d.root = root
	}
}

// WithEndpoints overrides the API and content hosts (for testing).
func WithEndpoints(apiURL, contentURL string) DropboxOption {
	return func(d *Dropbox) {
		d.apiURL = strings.TrimRight(apiURL, "/")
		d.contentURL = strings.TrimRight(contentURL, "/")
	}
}

// WithDropboxHTTPClient sets a custom HTTP client.
func WithDropboxHTTPClient(hc *http.Client) DropboxOption {
	return func(d *Dropbox) {
		d.httpClient = hc
	}
}

// NewDropbox creates a Dropbox store authenticated with an access token.
func NewDropbox(token string, opts ...DropboxOption) *Dropbox {
	d := &Dropbox{
		token:      token,
		apiURL:     dropboxAPIURL,
		contentURL: dropboxContentURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements FileStore.
func (d *Dropbox) Name() string { return "dropbox" }

type dropboxEntry struct {
	Tag            string `json:".tag"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	PathDisplay    string `json:"path_display"`
	PathLower      string `json:"path_lower"`
	Size           int64  `json:"size"`
	ServerModified string `json:"server_modified"`
}

func (e dropboxEntry) file() File {
	f := File{
		ID:        e.ID,
		Name:      e.Name,
		Path:      e.PathDisplay,
		PathLower: e.PathLower,
		Size:      e.Size,
	}
	if f.Path == "" {
		f.Path = e.PathLower
	}
	if t, err := time.Parse(time.RFC3339, e.ServerModified); err == nil {
		f.Modified = t
	}
	return f
}

type listFolderResponse struct {
	Entries []dropboxEntry `json:"entries"`
	Cursor  string         `json:"cursor"`
	HasMore bool           `json:"has_more"`
}

// ListPDFs implements FileStore, following list_folder/continue until exhausted.
func (d *Dropbox) ListPDFs(ctx context.Context) ([]File, error) {
	var page listFolderResponse
	err := d.rpc(ctx, "/files/list_folder", map[string]any{
		"path":      d.root,
		"recursive": true,
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder: %w", err)
	}

	var files []File
	for {
		for _, e := range page.Entries {
			if e.Tag == "file" && isPDF(e.Name) {
				files = append(files, e.file())
			}
		}
		if !page.HasMore {
			return files, nil
		}
		cursor := page.Cursor
		page = listFolderResponse{}
		if err := d.rpc(ctx, "/files/list_folder/continue", map[string]string{"cursor": cursor}, &page); err != nil {
			return nil, fmt.Errorf("failed to continue listing: %w", err)
		}
	}
}

// Download implements FileStore.
func (d *Dropbox) Download(ctx context.Context, path string) ([]byte, error) {
	arg, err := apiArg(map[string]string{"path": path})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal download arg: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.contentURL+"/files/download", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Dropbox-API-Arg", arg)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := dropboxStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// TemporaryLink implements FileStore. Dropbox links expire after four hours.
func (d *Dropbox) TemporaryLink(ctx context.Context, path string) (string, error) {
	var out struct {
		Link string `json:"link"`
	}
	if err := d.rpc(ctx, "/files/get_temporary_link", map[string]string{"path": path}, &out); err != nil {
		return "", fmt.Errorf("failed to get temporary link: %w", err)
	}
	return out.Link, nil
}

// Move implements FileStore.
func (d *Dropbox) Move(ctx context.Context, from, to string) (File, error) {
	var out struct {
		Metadata dropboxEntry `json:"metadata"`
	}
	err := d.rpc(ctx, "/files/move_v2", map[string]any{
		"from_path":  from,
		"to_path":    to,
		"autorename": false,
	}, &out)
	if err != nil {
		return File{}, fmt.Errorf("failed to move %s: %w", from, err)
	}
	return out.Metadata.file(), nil
}

func (d *Dropbox) rpc(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := dropboxStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// DropboxError is a non-2xx Dropbox API response.
type DropboxError struct {
	StatusCode int
	Summary    string
}

func (e *DropboxError) Error() string {
	return fmt.Sprintf("dropbox error %d: %s", e.StatusCode, e.Summary)
}

// Is maps endpoint-specific 409 summaries onto the package sentinels.
func (e *DropboxError) Is(target error) bool {
	if e.StatusCode != http.StatusConflict {
		return false
	}
	switch target {
	case ErrConflict:
		return strings.Contains(e.Summary, "to/conflict")
	case ErrNotFound:
		return strings.Contains(e.Summary, "not_found")
	}
	return false
}

func dropboxStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	summary := strings.TrimSpace(string(raw))
	var parsed struct {
		ErrorSummary string `json:"error_summary"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.ErrorSummary != "" {
		summary = parsed.ErrorSummary
	}
	return &DropboxError{StatusCode: resp.StatusCode, Summary: summary}
}

// apiArg encodes v for the Dropbox-API-Arg header. Header values must be
// ASCII, so every rune from 0x7F up is written as a \uXXXX escape.
func apiArg(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range string(raw) {
		switch {
		case r < 0x7F:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "\\u%04x\\u%04x", hi, lo)
		default:
			fmt.Fprintf(&b, "\\u%04x", r)
		}
	}
	return b.String(), nil
}

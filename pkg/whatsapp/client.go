package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/metrics"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
)

const (
	DefaultBaseURL       = "https://graph.facebook.com"
	DefaultDialogBaseURL = "https://www.facebook.com"
	DefaultVersion       = "v24.0"
	DefaultPageSize      = 100
	DefaultTimeout       = 30 * time.Second

	// MaxListedTemplates bounds ListAll no matter how many pages the platform
	// reports. A remote that hands back the cursor it was just given ends the
	// listing earlier, with whatever was collected so far.
	MaxListedTemplates = 500

	maxResponseBytes = 4 << 20
	metricsProvider  = "whatsapp"
)

// RequiredPermissions are the token scopes template management depends on
var RequiredPermissions = []string{
	"business_management",
	"whatsapp_business_management",
	"whatsapp_business_messaging",
}

// Options configures a Client
type Options struct {
	BaseURL       string
	DialogBaseURL string
	Version       string
	Timeout       time.Duration
	AppID         string
	AppSecret     string
	HTTPClient    *http.Client
}

// Client talks to the WhatsApp Business template endpoints of the Graph API.
// It performs no retries; callers decide on retry policy.
type Client struct {
	baseURL       string
	dialogBaseURL string
	version       string
	appID         string
	appSecret     string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient creates a new Graph API client
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.DialogBaseURL == "" {
		opts.DialogBaseURL = DefaultDialogBaseURL
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		dialogBaseURL: strings.TrimRight(opts.DialogBaseURL, "/"),
		version:       opts.Version,
		appID:         opts.AppID,
		appSecret:     opts.AppSecret,
		httpClient:    httpClient,
		logger:        logger,
	}
}

func (c *Client) templatesPath(creds Credentials) string {
	return fmt.Sprintf("/%s/%s/message_templates", c.version, url.PathEscape(creds.AccountID))
}

// Submit creates t on the platform and returns the platform's template id.
func (c *Client) Submit(ctx context.Context, t *models.Template, creds Credentials) (string, error) {
	components, err := Encode(t.Content())
	if err != nil {
		return "", err
	}
	req := createTemplateRequest{
		Name:       t.Name,
		Category:   string(t.Category),
		Language:   t.Language,
		Components: components,
	}

	var resp createTemplateResponse
	if err := c.do(ctx, "submit_template", http.MethodPost, c.templatesPath(creds), nil, req, creds.AccessToken, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: create template response carried no id", ErrTransport)
	}

	c.logger.Info("template submitted",
		zap.String("name", t.Name),
		zap.String("templateId", resp.ID),
		zap.String("status", resp.Status))
	return resp.ID, nil
}

// Remove deletes every language variant of the named template. A template
// that no longer exists comes back as a RemoteError; see IsNotFound.
func (c *Client) Remove(ctx context.Context, name string, creds Credentials) error {
	q := url.Values{}
	q.Set("name", name)
	return c.do(ctx, "delete_template", http.MethodDelete, c.templatesPath(creds), q, nil, creds.AccessToken, nil)
}

// ListAll pages through the account's templates, following the after cursor
// until it is absent, repeats the previous one, or MaxListedTemplates have
// been collected.
func (c *Client) ListAll(ctx context.Context, creds Credentials, pageSize int) ([]RemoteTemplate, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []RemoteTemplate
	after := ""
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		if after != "" {
			q.Set("after", after)
		}

		var page templatePage
		if err := c.do(ctx, "list_templates", http.MethodGet, c.templatesPath(creds), q, nil, creds.AccessToken, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if len(all) >= MaxListedTemplates {
			c.logger.Warn("template listing truncated",
				zap.String("wabaId", creds.AccountID),
				zap.Int("limit", MaxListedTemplates))
			return all[:MaxListedTemplates], nil
		}

		next := page.Paging.Cursors.After
		if next == "" || next == after || len(page.Data) == 0 {
			return all, nil
		}
		after = next
	}
}

// ExchangeCode trades an embedded-signup authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*AccessToken, error) {
	if c.appID == "" || c.appSecret == "" {
		return nil, ErrAppNotConfigured
	}
	q := url.Values{}
	q.Set("client_id", c.appID)
	q.Set("client_secret", c.appSecret)
	q.Set("code", code)

	var token AccessToken
	if err := c.do(ctx, "exchange_token", http.MethodGet, "/"+c.version+"/oauth/access_token", q, nil, "", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// InspectToken returns the scopes and validity of a user access token.
func (c *Client) InspectToken(ctx context.Context, inputToken string) (*TokenInfo, error) {
	if c.appID == "" || c.appSecret == "" {
		return nil, ErrAppNotConfigured
	}
	q := url.Values{}
	q.Set("input_token", inputToken)
	q.Set("access_token", c.appID+"|"+c.appSecret)

	var resp struct {
		Data TokenInfo `json:"data"`
	}
	if err := c.do(ctx, "debug_token", http.MethodGet, "/debug_token", q, nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// PermissionDialogURL builds the OAuth dialog URL that asks the user for RequiredPermissions.
func (c *Client) PermissionDialogURL(redirectURL, state string) string {
	q := url.Values{}
	q.Set("client_id", c.appID)
	q.Set("redirect_uri", redirectURL)
	q.Set("scope", strings.Join(RequiredPermissions, ","))
	q.Set("state", state)
	q.Set("response_type", "code")
	return fmt.Sprintf("%s/%s/dialog/oauth?%s", c.dialogBaseURL, c.version, q.Encode())
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, token string, out any) (err error) {
	start := time.Now()
	defer func() {
		reason := ""
		switch {
		case err == nil:
		case errors.Is(err, ErrRemoteRejected):
			reason = "rejected"
		default:
			reason = "transport"
		}
		metrics.ObserveExternalCall(metricsProvider, op, reason, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: building %s request: %v", ErrTransport, op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %v", ErrTransport, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remoteErr, ok := parseRemoteError(resp.StatusCode, data)
		if !ok && resp.StatusCode != http.StatusNotFound {
			c.logger.Warn("platform request failed without an error payload",
				zap.String("op", op),
				zap.Int("status", resp.StatusCode))
			return fmt.Errorf("%w: %s %s: status %d", ErrTransport, method, path, resp.StatusCode)
		}
		c.logger.Warn("platform rejected request",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.Int("code", remoteErr.Code),
			zap.String("message", remoteErr.Message))
		return remoteErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decoding %s response: %v", ErrTransport, op, err)
		}
	}
	return nil
}

// parseRemoteError reports false when the body carries no Graph error
// envelope, as with gateway and proxy answers.
func parseRemoteError(status int, data []byte) (*RemoteError, bool) {
	remoteErr := &RemoteError{StatusCode: status}
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error.Message != "" {
		remoteErr.Code = env.Error.Code
		remoteErr.Subcode = env.Error.ErrorSubcode
		remoteErr.Type = env.Error.Type
		remoteErr.Message = env.Error.Message
		remoteErr.TraceID = env.Error.FBTraceID
		return remoteErr, true
	}
	remoteErr.Message = http.StatusText(status)
	return remoteErr, false
}

package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultTimeout = 8 * time.Second
	csrfHeader     = "X-CSRFToken"
)

// CredentialProvider supplies the opaque CSRF credential attached to
// modifying review calls. Where the token comes from is not this package's
// business.
type CredentialProvider interface {
	CSRFToken(ctx context.Context) (string, error)
}

// CredentialFunc adapts a plain function to CredentialProvider.
type CredentialFunc func(ctx context.Context) (string, error)

func (f CredentialFunc) CSRFToken(ctx context.Context) (string, error) { return f(ctx) }

// Review is one customer review as served by the review endpoint.
type Review struct {
	ID        int64  `json:"id"`
	User      string `json:"user"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CanDelete bool   `json:"can_delete"`
}

// Summary is the review widget payload for one product.
type Summary struct {
	AvgRating float64  `json:"avg_rating"`
	Count     int      `json:"count"`
	Reviews   []Review `json:"reviews"`
}

// Submission is a new review before dispatch. Validation happens client-side
// so obviously broken input never leaves the process.
type Submission struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// Result mirrors the endpoint's {success, error?} envelope.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

var (
	// ErrRejected is returned when the endpoint reports success=false.
	ErrRejected = errors.New("reviews: rejected by endpoint")
	// ErrBadStatus marks a non-2xx response.
	ErrBadStatus = errors.New("reviews: unexpected status")
)

// Client talks to the review endpoints. Empty baseURL serves fake data so the
// widget renders without a backend.
type Client struct {
	baseURL  string
	http     *http.Client
	creds    CredentialProvider
	validate *validator.Validate
}

// NewClient builds a review client; creds may be nil for read-only use.
func NewClient(baseURL string, creds CredentialProvider) *Client {
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		creds:    creds,
		validate: validator.New(),
	}
}

// Fetch loads the review summary for a product.
func (c *Client) Fetch(ctx context.Context, productID int64) (Summary, error) {
	if c == nil || c.baseURL == "" {
		return fakeSummary(productID), nil
	}
	endpoint := fmt.Sprintf("%s/api/product/%d/reviews/", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Summary{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Summary{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Summary{}, fmt.Errorf("%w: %d: %s", ErrBadStatus, resp.StatusCode, drainError(resp.Body))
	}

	var out Summary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Summary{}, err
	}
	if out.Reviews == nil {
		out.Reviews = []Review{}
	}
	return out, nil
}

// Submit validates and posts a new review for a product.
func (c *Client) Submit(ctx context.Context, productID int64, sub Submission) error {
	if err := c.validate.Struct(sub); err != nil {
		return err
	}
	if c == nil || c.baseURL == "" {
		return nil
	}
	endpoint := fmt.Sprintf("%s/api/product/%d/add-review/", c.baseURL, productID)
	return c.postJSON(ctx, endpoint, sub)
}

// Delete removes one review by id.
func (c *Client) Delete(ctx context.Context, reviewID int64) error {
	if c == nil || c.baseURL == "" {
		return nil
	}
	endpoint := fmt.Sprintf("%s/api/review/%d/delete/", c.baseURL, reviewID)
	return c.postJSON(ctx, endpoint, nil)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.creds != nil {
		token, err := c.creds.CSRFToken(ctx)
		if err != nil {
			return fmt.Errorf("reviews: credential: %w", err)
		}
		req.Header.Set(csrfHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d: %s", ErrBadStatus, resp.StatusCode, drainError(resp.Body))
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return err
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("%w: %s", ErrRejected, res.Error)
		}
		return ErrRejected
	}
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}

func fakeSummary(productID int64) Summary {
	reviews := []Review{
		{ID: productID*10 + 1, User: "مریم", Rating: 5, Comment: "کیفیت ساخت عالی، ارسال هم سریع بود."},
		{ID: productID*10 + 2, User: "رضا", Rating: 4, Comment: "ارزش خرید دارد، فقط بسته‌بندی می‌توانست بهتر باشد.", CanDelete: true},
	}
	return Summary{AvgRating: 4.5, Count: len(reviews), Reviews: reviews}
}

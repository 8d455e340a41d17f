// Package paymentprovider реализует клиент HTTP API Stripe: создание
// продукта и цены для курса, а также hosted checkout-сессии.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Stripe.
func NewClient(secretKey, apiURL string) *Client {
	if apiURL == "" {
		apiURL = "https://api.stripe.com/v1"
	}
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// newRequest собирает form-encoded запрос к API Stripe с Bearer-авторизацией.
// Непустой idempotencyKey передается в заголовке Idempotency-Key, чтобы
// повтор запроса не создавал дубликат на стороне провайдера.
func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values, idempotencyKey string) (*http.Request, error) {
	reqURL := c.apiURL + path
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return fmt.Errorf("unexpected status: %s", resp.Status)
		}
		return &errResp.Error
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// CreateProduct создает продукт Stripe для курса.
func (c *Client) CreateProduct(ctx context.Context, name, description string) (*Product, error) {
	form := url.Values{}
	form.Set("name", name)
	if description != "" {
		form.Set("description", description)
	}
	form.Set("active", "true")

	req, err := c.newRequest(ctx, http.MethodPost, "/products", form, "")
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.do(req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreatePrice создает цену для продукта. Сумма принимается в долларах
// и конвертируется в центы.
func (c *Client) CreatePrice(ctx context.Context, productID string, amount float64, currency string) (*Price, error) {
	if currency == "" {
		currency = "usd"
	}
	unitAmount := int64(math.Round(amount * 100))

	form := url.Values{}
	form.Set("product", productID)
	form.Set("unit_amount", strconv.FormatInt(unitAmount, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("active", "true")

	req, err := c.newRequest(ctx, http.MethodPost, "/prices", form, "")
	if err != nil {
		return nil, err
	}
	var price Price
	if err := c.do(req, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// CreateCheckoutSession создает hosted checkout-сессию с одной позицией
// (цена курса, количество 1) и метаданными course_id/user_id.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("line_items[0][price]", params.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("payment_method_types[0]", "card")
	for key, value := range params.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/checkout/sessions", form, params.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

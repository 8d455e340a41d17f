package paymentprovider

// Product представляет продукт Stripe, созданный для курса.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Price представляет цену Stripe, привязанную к продукту.
// UnitAmount хранится в центах.
type Price struct {
	ID         string `json:"id"`
	ProductID  string `json:"product"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
	Active     bool   `json:"active"`
}

// CheckoutSession представляет сессию hosted checkout.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
}

// CreateCheckoutSessionParams параметры создания checkout-сессии.
type CreateCheckoutSessionParams struct {
	PriceID        string
	SuccessURL     string
	CancelURL      string
	Metadata       map[string]string
	IdempotencyKey string
}

// APIError описывает ошибку, возвращаемую API Stripe.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "stripe: " + e.Code + ": " + e.Message
	}
	return "stripe: " + e.Message
}

type errorResponse struct {
	Error APIError `json:"error"`
}

package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"app/internal/usecase"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// 配送先の許可国
var defaultAllowedCountries = []string{"US", "CA", "GB", "AU", "JP"}

// StripeGateway はCheckoutProviderとEventVerifierのStripe実装。
// adminが鍵を差し替えても反映されるよう、clientは呼び出しごとに作る。
type StripeGateway struct {
	AllowedCountries []string
}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{AllowedCountries: defaultAllowedCountries}
}

func (g *StripeGateway) CreateSession(ctx context.Context, secretKey string, req usecase.ProviderSessionRequest) (usecase.ProviderSession, error) {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if len(li.Images) > 0 {
			productData.Images = stripe.StringSlice(li.Images)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(li.UnitAmountCents),
				ProductData: productData,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(g.AllowedCountries),
		},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	s, err := sc.CheckoutSessions.New(params)
	if err != nil {
		return usecase.ProviderSession{}, err
	}

	return usecase.ProviderSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) VerifyAndParse(payload []byte, sigHeader string, secret string) (usecase.ProviderEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return usecase.ProviderEvent{}, fmt.Errorf("signature verification failed: %w", err)
	}
	return eventFromStripe(event.ID, string(event.Type), event.Data.Raw)
}

func (g *StripeGateway) ParseUnverified(payload []byte) (usecase.ProviderEvent, error) {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return usecase.ProviderEvent{}, fmt.Errorf("parse event: %w", err)
	}
	return eventFromStripe(raw.ID, raw.Type, raw.Data.Object)
}

// data.objectはcheckout.session系だけ読む（それ以外はSessionIDが空のまま）
func eventFromStripe(id string, eventType string, object json.RawMessage) (usecase.ProviderEvent, error) {
	ev := usecase.ProviderEvent{ID: id, Type: eventType}

	if len(object) == 0 {
		return ev, nil
	}

	var session struct {
		ID              string `json:"id"`
		CustomerEmail   string `json:"customer_email"`
		CustomerDetails struct {
			Email string `json:"email"`
		} `json:"customer_details"`
	}
	if err := json.Unmarshal(object, &session); err != nil {
		return usecase.ProviderEvent{}, fmt.Errorf("parse event object: %w", err)
	}

	ev.SessionID = session.ID
	ev.CustomerEmail = session.CustomerEmail
	if ev.CustomerEmail == "" {
		ev.CustomerEmail = session.CustomerDetails.Email
	}
	return ev, nil
}

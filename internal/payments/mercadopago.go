package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/barberbook/booking-api/internal/models"
)

// Client creates MercadoPago checkout preferences for confirmed
// bookings. Nil when no access token is configured.
type Client struct {
	prefs preference.Client
}

func NewClient(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Client{prefs: preference.NewClient(cfg)}, nil
}

// CheckoutLink builds a single-item preference for the booking's total
// price and returns the hosted checkout URL.
func (c *Client) CheckoutLink(ctx context.Context, b *models.Booking) (string, error) {
	req := preference.Request{
		ExternalReference: fmt.Sprintf("booking-%d", b.ID),
		Items: []preference.ItemRequest{
			{
				ID:        fmt.Sprintf("service-%d", b.ServiceID),
				Title:     fmt.Sprintf("Booking #%d", b.ID),
				Quantity:  1,
				UnitPrice: b.TotalPrice,
			},
		},
	}

	pref, err := c.prefs.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return pref.InitPoint, nil
}

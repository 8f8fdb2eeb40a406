package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Stats are the dashboard counters.
type Stats struct {
	Orders         int             `json:"totalOrders"`
	PendingOrders  int             `json:"pendingOrders"`
	Revenue        decimal.Decimal `json:"totalRevenue"`
	Users          int             `json:"totalUsers"`
	Bookings       int             `json:"totalBookings"`
	UnreadMessages int             `json:"unreadMessages"`
}

// Message is a contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("message: missing id")
	}
	return nil
}

type MessageQuery struct {
	Page   int
	Limit  int
	Search string
}

type MessageList struct {
	Items []Message
	Total int
}

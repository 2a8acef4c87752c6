package orders

import (
	"time"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
)

// Minimal satu batch cetak.
const PrintBatchSize = 50

// Draft is the in-progress order form of one session. It is a plain value: callers
// edit a copy and re-validate after each change.
type Draft struct {
	CustomerName    string          `json:"customer_name"`
	WhatsApp        string          `json:"whatsapp"`
	Email           string          `json:"email"`
	CatalogID       string          `json:"catalog_id"`
	Channel         catalog.Channel `json:"channel"`
	Quantity        int             `json:"quantity"`
	ShippingAddress string          `json:"shipping_address"`
	GroomParents    string          `json:"groom_parents"`
	BrideParents    string          `json:"bride_parents"`
	BackgroundSong  string          `json:"background_song,omitempty"`
	PrewedPhotoRef  string          `json:"prewed_photo_ref,omitempty"`
	EventDate       string          `json:"event_date"` // YYYY-MM-DD
	EventVenue      string          `json:"event_venue"`
	MapLink         string          `json:"map_link,omitempty"`
}

func NewDraft() Draft {
	return Draft{Channel: catalog.ChannelDigital, Quantity: 1}
}

// WithDesign selects a design: channel follows the entry and quantity resets to the
// channel's default (one link, or one print batch).
func (d Draft) WithDesign(e catalog.Entry) Draft {
	d.CatalogID = e.ID
	d.Channel = e.Channel
	if e.Channel == catalog.ChannelPrint {
		d.Quantity = PrintBatchSize
	} else {
		d.Quantity = 1
	}
	return d
}

// Order is a confirmed draft. Only Status changes after creation.
type Order struct {
	ID string `json:"id"`
	Draft
	Status    Status    `json:"status"`
	OrderDate string    `json:"order_date"` // YYYY-MM-DD, UTC
	CreatedAt time.Time `json:"created_at"`
}

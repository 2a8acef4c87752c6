package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	kafkax "github.com/ariefcatur/nirmala-invitations/internal/kafka"
	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/ariefcatur/nirmala-invitations/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Message struct {
	OrderID string
	Text    string
}

// Sender delivers an admin notification (WhatsApp gateway, email, ...).
type Sender interface {
	Send(ctx context.Context, m Message) error
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	slog.Info("admin notification", "order_id", m.OrderID, "text", m.Text)
	return nil
}

type Service struct {
	Redis       *redis.Client
	Sender      Sender
	ServiceName string
}

// HandleOrderSubmitted: dipasang sebagai handler consumer. Malformed messages are
// logged and skipped; the consumer retries returned errors in place, so only
// transient failures (redis, sender) are returned.
func (s *Service) HandleOrderSubmitted(ctx context.Context, m kafkago.Message) error {
	// header cukup untuk menyaring event lain tanpa decode body
	if et := kafkax.Header(m, "x-event-type"); et != "" && et != orders.EventOrderSubmitted {
		return nil
	}
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		slog.Error("skip malformed envelope", "partition", m.Partition, "offset", m.Offset, "err", err)
		return nil
	}
	if env.EventType != orders.EventOrderSubmitted {
		return nil
	} // ignore

	p, err := kafkax.UnwrapPayload[orders.OrderSubmittedPayload](env.Payload)
	if err != nil {
		slog.Error("skip malformed payload", "event_id", env.EventID, "err", err)
		return nil
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	first, err := redisx.Claim(ctx, s.Redis, dkey, redisx.TTLDedup)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	msg := Message{OrderID: p.Order.ID, Text: Compose(p)}
	if err := s.Sender.Send(ctx, msg); err != nil {
		// lepas claim supaya redelivery bisa coba lagi
		_ = s.Redis.Del(ctx, dkey).Err()
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

var idr = message.NewPrinter(language.Indonesian)

func FormatRupiah(n int) string {
	return idr.Sprintf("Rp %d", n)
}

func Compose(p orders.OrderSubmittedPayload) string {
	o := p.Order
	var b strings.Builder
	fmt.Fprintf(&b, "Pesanan baru #%s (%s)\n", o.ID, o.OrderDate)
	fmt.Fprintf(&b, "Nama: %s | WA: %s | Email: %s\n", o.CustomerName, o.WhatsApp, o.Email)
	if o.Channel == catalog.ChannelPrint {
		fmt.Fprintf(&b, "Desain: %s (cetak, %d pcs)\n", p.DesignName, o.Quantity)
		fmt.Fprintf(&b, "Kirim ke: %s\n", o.ShippingAddress)
	} else {
		fmt.Fprintf(&b, "Desain: %s (digital)\n", p.DesignName)
	}
	fmt.Fprintf(&b, "Acara: %s di %s\n", o.EventDate, o.EventVenue)
	fmt.Fprintf(&b, "Total: %s", FormatRupiah(p.Total))
	return b.String()
}

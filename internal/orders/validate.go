package orders

import (
	"strings"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
)

// Field names match the Draft json tags so a form can show messages inline.
const (
	FieldCustomerName    = "customer_name"
	FieldWhatsApp        = "whatsapp"
	FieldEmail           = "email"
	FieldCatalogID       = "catalog_id"
	FieldGroomParents    = "groom_parents"
	FieldBrideParents    = "bride_parents"
	FieldEventDate       = "event_date"
	FieldEventVenue      = "event_venue"
	FieldShippingAddress = "shipping_address"
	FieldQuantity        = "quantity"
)

const msgQuantityTooLarge = "Jumlah undangan terlalu besar"

// FieldErrors maps a field name to a human-readable message. Empty means submittable.
type FieldErrors map[string]string

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Validate checks the required-field policy. No side effects; call it on every edit.
func Validate(d Draft) FieldErrors {
	errs := FieldErrors{}
	required := []struct {
		field, value, msg string
	}{
		{FieldCustomerName, d.CustomerName, "Nama wajib diisi"},
		{FieldWhatsApp, d.WhatsApp, "No WhatsApp wajib diisi"},
		{FieldEmail, d.Email, "Email wajib diisi"},
		{FieldCatalogID, d.CatalogID, "Pilih desain terlebih dahulu"},
		{FieldGroomParents, d.GroomParents, "Nama orang tua mempelai pria wajib diisi"},
		{FieldBrideParents, d.BrideParents, "Nama orang tua mempelai wanita wajib diisi"},
		{FieldEventDate, d.EventDate, "Tanggal acara wajib diisi"},
		{FieldEventVenue, d.EventVenue, "Tempat acara wajib diisi"},
	}
	for _, r := range required {
		if blank(r.value) {
			errs[r.field] = r.msg
		}
	}

	if d.Channel == catalog.ChannelPrint {
		if blank(d.ShippingAddress) {
			errs[FieldShippingAddress] = "Alamat pengiriman wajib diisi untuk undangan cetak"
		}
		if d.Quantity < PrintBatchSize {
			errs[FieldQuantity] = "Minimal pemesanan undangan cetak adalah 50 pcs"
		}
	}
	return errs
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

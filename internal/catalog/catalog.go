package catalog

import (
	"errors"
	"fmt"
	"strings"
)

type Channel string

const (
	ChannelDigital Channel = "digital"
	ChannelPrint   Channel = "print"
)

var ErrUnknownChannel = errors.New("unknown channel")

// ParseChannel menerima juga label lama "cetak" untuk print.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "digital":
		return ChannelDigital, nil
	case "print", "cetak":
		return ChannelPrint, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

func (c Channel) Valid() bool { return c == ChannelDigital || c == ChannelPrint }

// UnmarshalText lets drafts posted by older clients use "cetak".
func (c *Channel) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ""
		return nil
	}
	ch, err := ParseChannel(string(b))
	if err != nil {
		return err
	}
	*c = ch
	return nil
}

// Entry is one purchasable invitation design. UnitPrice is whole Rupiah; for print
// designs it covers one batch of 50 cards.
type Entry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Channel     Channel `json:"channel"`
	UnitPrice   int     `json:"unit_price"`
	MediaRef    string  `json:"media_ref"`
	PreviewURL  string  `json:"preview_url,omitempty"`
	Description string  `json:"description"`
}

type Catalog struct {
	entries []Entry
	byID    map[string]int
}

func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.ID == "" {
			return nil, errors.New("catalog entry without id")
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id: %s", e.ID)
		}
		if !e.Channel.Valid() {
			return nil, fmt.Errorf("catalog id %s: %w: %q", e.ID, ErrUnknownChannel, e.Channel)
		}
		if e.UnitPrice <= 0 {
			return nil, fmt.Errorf("catalog id %s: unit price must be positive", e.ID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// List returns entries in declaration order.
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// FindByID: ok=false bukan error, misal draft belum pilih desain.
func (c *Catalog) FindByID(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Filter returns the entries matching category (case-insensitive) and channel, in
// declaration order. An empty category or channel matches everything.
func (c *Catalog) Filter(category string, ch Channel) []Entry {
	category = strings.TrimSpace(category)
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		if ch != "" && e.Channel != ch {
			continue
		}
		out = append(out, e)
	}
	return out
}

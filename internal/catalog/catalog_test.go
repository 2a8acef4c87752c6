package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultListKeepsDeclarationOrder(t *testing.T) {
	c := Default()
	list := c.List()
	require.Len(t, list, 6)
	for i, e := range list {
		assert.Equal(t, string(rune('1'+i)), e.ID)
	}

	// List hands out a copy
	list[0].Name = "changed"
	assert.Equal(t, "Elegant Rose Digital", c.List()[0].Name)
}

func TestFindByID(t *testing.T) {
	c := Default()

	e, ok := c.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, ChannelPrint, e.Channel)
	assert.Equal(t, 100000, e.UnitPrice)

	_, ok = c.FindByID("")
	assert.False(t, ok)
	_, ok = c.FindByID("99")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	c := Default()
	ids := func(es []Entry) []string {
		out := make([]string, 0, len(es))
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(c.Filter("", "")))
	assert.Equal(t, []string{"1", "3", "5", "6"}, ids(c.Filter("Premium", "")))
	assert.Equal(t, []string{"2", "4"}, ids(c.Filter(" standard ", "")))
	assert.Equal(t, []string{"2", "4", "6"}, ids(c.Filter("", ChannelPrint)))
	assert.Equal(t, []string{"6"}, ids(c.Filter("premium", ChannelPrint)))
	assert.Empty(t, c.Filter("Gold", ""))
	assert.NotNil(t, c.Filter("Gold", ""))
}

func TestNewRejectsBadEntries(t *testing.T) {
	ok := Entry{ID: "a", Channel: ChannelDigital, UnitPrice: 1}

	_, err := New([]Entry{ok, ok})
	assert.ErrorContains(t, err, "duplicate catalog id")

	_, err = New([]Entry{{Channel: ChannelDigital, UnitPrice: 1}})
	assert.Error(t, err)

	_, err = New([]Entry{{ID: "b", Channel: "fax", UnitPrice: 1}})
	assert.ErrorIs(t, err, ErrUnknownChannel)

	_, err = New([]Entry{{ID: "c", Channel: ChannelPrint, UnitPrice: 0}})
	assert.ErrorContains(t, err, "unit price must be positive")
}

func TestParseChannel(t *testing.T) {
	ch, err := ParseChannel("cetak")
	require.NoError(t, err)
	assert.Equal(t, ChannelPrint, ch)

	ch, err = ParseChannel(" Digital ")
	require.NoError(t, err)
	assert.Equal(t, ChannelDigital, ch)

	_, err = ParseChannel("email")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestChannelUnmarshalJSON(t *testing.T) {
	var v struct {
		Channel Channel `json:"channel"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"channel":"cetak"}`), &v))
	assert.Equal(t, ChannelPrint, v.Channel)

	assert.Error(t, json.Unmarshal([]byte(`{"channel":"pigeon"}`), &v))
}

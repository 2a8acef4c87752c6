package catalog

var seed = []Entry{
	{
		ID:          "1",
		Name:        "Elegant Rose Digital",
		Category:    "Premium",
		Channel:     ChannelDigital,
		UnitPrice:   150000,
		MediaRef:    "https://images.unsplash.com/photo-1606216794074-735e91aa2c92?w=400&h=600&fit=crop",
		PreviewURL:  "https://example-wedding-invitation.netlify.app/",
		Description: "Undangan digital elegant dengan motif mawar dan animasi menarik",
	},
	{
		ID:          "2",
		Name:        "Modern Minimalist Print",
		Category:    "Standard",
		Channel:     ChannelPrint,
		UnitPrice:   100000,
		MediaRef:    "https://images.unsplash.com/photo-1606800052052-a08af7148866?w=400&h=600&fit=crop",
		Description: "Undangan cetak minimalis modern dengan kualitas kertas premium",
	},
	{
		ID:          "3",
		Name:        "Vintage Classic Digital",
		Category:    "Premium",
		Channel:     ChannelDigital,
		UnitPrice:   175000,
		MediaRef:    "https://images.unsplash.com/photo-1606216794119-3f716bdfed8f?w=400&h=600&fit=crop",
		PreviewURL:  "https://vintage-wedding-card.netlify.app/",
		Description: "Undangan digital vintage klasik dengan musik background dan efek parallax",
	},
	{
		ID:          "4",
		Name:        "Floral Garden Print",
		Category:    "Standard",
		Channel:     ChannelPrint,
		UnitPrice:   120000,
		MediaRef:    "https://images.unsplash.com/photo-1606800052085-b8d973fa3fad?w=400&h=600&fit=crop",
		Description: "Undangan cetak dengan motif bunga taman yang segar dan elegan",
	},
	{
		ID:          "5",
		Name:        "Royal Wedding Digital",
		Category:    "Premium",
		Channel:     ChannelDigital,
		UnitPrice:   200000,
		MediaRef:    "https://images.unsplash.com/photo-1545558014-8692077e9b5c?w=400&h=600&fit=crop",
		PreviewURL:  "https://royal-wedding-invite.netlify.app/",
		Description: "Undangan digital mewah dengan animasi royal dan countdown timer",
	},
	{
		ID:          "6",
		Name:        "Traditional Batik Print",
		Category:    "Premium",
		Channel:     ChannelPrint,
		UnitPrice:   180000,
		MediaRef:    "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=600&fit=crop",
		Description: "Undangan cetak dengan motif batik tradisional Indonesia yang ekslusif",
	},
}

// Default returns the catalog seeded at startup.
func Default() *Catalog {
	c, err := New(seed)
	if err != nil {
		panic(err)
	}
	return c
}

package domain

// SampleProperties возвращает стартовый набор объектов для пустого каталога.
// Вызывается только при первом запуске, когда коллекция properties пуста.
func SampleProperties() []NewPropertyInput {
	str := func(s string) *string { return &s }
	yes := true
	no := false

	return []NewPropertyInput{
		{
			Title:       "Residential Land",
			Description: str("Dry, fenced residential plot in a gated estate with good road access and a registered survey."),
			Type:        TypeResidentialLand,
			Price:       "12500000",
			Location:    "Ibeju-Lekki, Lagos",
			Address:     str("Eleko Beach Road, Ibeju-Lekki"),
			Size:        str("600 sqm"),
			Features:    []string{"Gated Estate", "Registered Survey", "Good Road Network", "Dry Land"},
			Images:      []string{"/uploads/samples/residential-land-1.jpg"},
			Videos:      []string{},
			Status:      StatusAvailable,
			Featured:    &no,
		},
		{
			Title:       "Commercial Land",
			Description: str("Corner-piece commercial plot on a busy expressway, suitable for a plaza, filling station or showroom."),
			Type:        TypeCommercialLand,
			Price:       "35000000",
			Location:    "Ajah, Lagos",
			Address:     str("Lekki-Epe Expressway, Ajah"),
			Size:        str("1200 sqm"),
			Features:    []string{"Corner Piece", "Expressway Frontage", "C of O", "High Traffic"},
			Images:      []string{"/uploads/samples/commercial-land-1.jpg"},
			Videos:      []string{},
			Status:      StatusAvailable,
			Featured:    &yes,
		},
		{
			Title:       "Luxury 4BR Duplex",
			Description: str("Fully detached four-bedroom duplex with a BQ, fitted kitchen, cinema room and swimming pool."),
			Type:        TypeLuxuryHome,
			Price:       "85000000",
			Location:    "Lekki Phase 1, Lagos",
			Address:     str("Admiralty Way, Lekki Phase 1"),
			Size:        str("450 sqm"),
			Bedrooms:    str("4"),
			Bathrooms:   str("5"),
			Parking:     str("3"),
			Features:    []string{"Swimming Pool", "Cinema Room", "Boys Quarters", "24/7 Power", "Fitted Kitchen"},
			Images:      []string{"/uploads/samples/duplex-1.jpg", "/uploads/samples/duplex-2.jpg"},
			Videos:      []string{"/uploads/samples/duplex-tour.mp4"},
			Status:      StatusAvailable,
			Featured:    &yes,
		},
	}
}

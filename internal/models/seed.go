package models

import "time"

// DefaultSettings returns the settings used when no persisted value exists
func DefaultSettings() Settings {
	return Settings{
		AIRecognitionEnabled: true,
		Currency:             CurrencyINR,
		Company: CompanyInfo{
			Name:    "SoleTrack Elite Footwear",
			Address: "Shop No. 42, Galleria Market, New Delhi",
			Phone:   "+91 98765 43210",
		},
	}
}

// DefaultCatalog returns the starter inventory used when no persisted
// catalog exists
func DefaultCatalog() []Product {
	now := time.Now()
	return []Product{
		{
			ID:             "seed-air-max-pulse",
			Name:           "Air Max Pulse",
			Brand:          "Nike",
			WholesalePrice: 8500,
			RetailerPrice:  12500,
			ImageURL:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&q=80&w=600",
			Description:    "Iconic street style meets high-performance comfort.",
			Variants: []Variant{
				{ID: "seed-amp-1", Color: "Red/Black", Size: "42", Stock: 12},
				{ID: "seed-amp-2", Color: "Red/Black", Size: "43", Stock: 8},
				{ID: "seed-amp-3", Color: "White/Cyan", Size: "42", Stock: 5},
			},
			CreatedAt: now,
		},
		{
			ID:             "seed-ultraboost-22",
			Name:           "UltraBoost 22",
			Brand:          "Adidas",
			WholesalePrice: 11000,
			RetailerPrice:  15990,
			ImageURL:       "https://images.unsplash.com/photo-1587563871167-1ee9c731aefb?auto=format&fit=crop&q=80&w=600",
			Description:    "Responsive cushioning for the ultimate running experience.",
			Variants: []Variant{
				{ID: "seed-ub-1", Color: "Black", Size: "41", Stock: 15},
				{ID: "seed-ub-2", Color: "Grey", Size: "42", Stock: 10},
			},
			CreatedAt: now,
		},
		{
			ID:             "seed-cloudflow-4",
			Name:           "Cloudflow 4",
			Brand:          "On",
			WholesalePrice: 9500,
			RetailerPrice:  13500,
			ImageURL:       "https://images.unsplash.com/photo-1608231387042-66d1773070a5?auto=format&fit=crop&q=80&w=600",
			Description:    "Lightweight performance with superior grip.",
			Variants: []Variant{
				{ID: "seed-cf-1", Color: "White/Flame", Size: "40", Stock: 7},
				{ID: "seed-cf-2", Color: "Black/Eclipse", Size: "43", Stock: 9},
			},
			CreatedAt: now,
		},
	}
}

package main

import "shophub/internal/domain"

func price(v float64) *float64 { return &v }

func count(v int) *int { return &v }

// demoProducts is the catalog a fresh development environment starts with
func demoProducts() []*domain.Product {
	return []*domain.Product{
		{
			Name:          "Premium Wireless Headphones",
			Description:   "High-quality wireless headphones with noise cancellation and 30-hour battery life. Perfect for music lovers and professionals.",
			Price:         299.99,
			OriginalPrice: price(399.99),
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&h=800&fit=crop",
			Images: []string{
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&h=800&fit=crop",
				"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=800&h=800&fit=crop",
			},
			InStock:       true,
			StockQuantity: 45,
			Rating:        price(4.5),
			Reviews:       count(128),
			Tags:          []string{"wireless", "audio", "premium"},
			Slug:          "premium-wireless-headphones",
		},
		{
			Name:          "Smart Watch Pro",
			Description:   "Advanced fitness tracking, heart rate monitoring, and seamless smartphone integration.",
			Price:         449.99,
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 32,
			Rating:        price(4.7),
			Reviews:       count(89),
			Tags:          []string{"smartwatch", "fitness", "tech"},
			Slug:          "smart-watch-pro",
		},
		{
			Name:          "Designer Backpack",
			Description:   "Stylish and functional backpack with laptop compartment and water-resistant material.",
			Price:         89.99,
			OriginalPrice: price(129.99),
			Category:      "Fashion",
			Image:         "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 67,
			Rating:        price(4.3),
			Reviews:       count(45),
			Tags:          []string{"backpack", "fashion", "travel"},
			Slug:          "designer-backpack",
		},
		{
			Name:          "Organic Cotton T-Shirt",
			Description:   "Comfortable, sustainable t-shirt made from 100% organic cotton. Available in multiple colors.",
			Price:         29.99,
			Category:      "Fashion",
			Image:         "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 150,
			Rating:        price(4.6),
			Reviews:       count(234),
			Tags:          []string{"organic", "clothing", "sustainable"},
			Slug:          "organic-cotton-tshirt",
		},
		{
			Name:          "Professional Camera",
			Description:   "24MP mirrorless camera with 4K video recording and interchangeable lenses.",
			Price:         1299.99,
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 12,
			Rating:        price(4.9),
			Reviews:       count(67),
			Tags:          []string{"camera", "photography", "professional"},
			Slug:          "professional-camera",
		},
		{
			Name:          "Minimalist Sneakers",
			Description:   "Clean design, premium materials, and all-day comfort. Perfect for casual wear.",
			Price:         119.99,
			Category:      "Fashion",
			Image:         "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 88,
			Rating:        price(4.4),
			Reviews:       count(156),
			Tags:          []string{"sneakers", "shoes", "minimalist"},
			Slug:          "minimalist-sneakers",
		},
		{
			Name:          "Portable Bluetooth Speaker",
			Description:   "Waterproof speaker with 360° sound and 12-hour battery life.",
			Price:         79.99,
			OriginalPrice: price(99.99),
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 94,
			Rating:        price(4.2),
			Reviews:       count(78),
			Tags:          []string{"speaker", "bluetooth", "portable"},
			Slug:          "portable-bluetooth-speaker",
		},
		{
			Name:          "Leather Wallet",
			Description:   "Handcrafted genuine leather wallet with RFID protection and minimalist design.",
			Price:         49.99,
			Category:      "Fashion",
			Image:         "https://images.unsplash.com/photo-1627123424574-724758594e93?w=800&h=800&fit=crop",
			InStock:       true,
			StockQuantity: 120,
			Rating:        price(4.5),
			Reviews:       count(92),
			Tags:          []string{"wallet", "leather", "accessories"},
			Slug:          "leather-wallet",
		},
	}
}

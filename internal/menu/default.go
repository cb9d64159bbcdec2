package menu

// Default returns the built-in lunch counter menu used when no other source is
// configured. Prices are minor units.
func Default() *Menu {
	return MustNew([]Item{
		{Name: "Cauliflower", Description: "Whole cauliflower, brined, roasted, and deep fried", Price: 700, Category: CategoryEntree},
		{Name: "Three Bean Chili", Description: "Black beans, red beans, kidney beans, slow cooked, topped with onion", Price: 400, Category: CategoryEntree},
		{Name: "Mushroom Pasta", Description: "Penne pasta, mushrooms, basil, with plenty of garlic", Price: 550, Category: CategoryEntree},
		{Name: "Spicy Black Bean Taco", Description: "Black beans, crispy fried tortilla, topped with salsa", Price: 300, Category: CategoryEntree},

		{Name: "Summer Salad", Description: "Heirloom tomatoes, butter lettuce, peaches, avocado, balsamic dressing", Price: 250, Category: CategorySide},
		{Name: "Butternut Squash Soup", Description: "Roasted butternut squash, roasted peppers, chili oil", Price: 300, Category: CategorySide},
		{Name: "Spicy Potatoes", Description: "Marble potatoes, roasted, and fried in house spice blend", Price: 200, Category: CategorySide},
		{Name: "Coconut Rice", Description: "Rice, coconut milk, lime, and sugar", Price: 150, Category: CategorySide},

		{Name: "Lime Soda", Description: "Sparkling water, lime juice, agave", Price: 150, Category: CategoryAccompaniment},
		{Name: "Mixed Berries", Description: "Strawberries, blueberries, raspberries, and huckleberry", Price: 100, Category: CategoryAccompaniment},
		{Name: "Bread", Description: "Sourdough, served with garlic butter", Price: 50, Category: CategoryAccompaniment},
		{Name: "Pickles", Description: "Crisp cucumber pickles, house brined", Price: 50, Category: CategoryAccompaniment},
	})
}

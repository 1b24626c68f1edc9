package catalog

import "github.com/shopspring/decimal"

// MenuEntry is a seedable menu row; the id is assigned by the store.
type MenuEntry struct {
	Name     string
	Price    int64
	Image    string
	Category Category
}

func (e MenuEntry) Item(id string) (Item, error) {
	return NewItem(id, e.Name, decimal.NewFromInt(e.Price), e.Image, e.Category)
}

// DefaultMenu is the canteen's initial menu.
func DefaultMenu() []MenuEntry {
	return []MenuEntry{
		{Name: "poori", Price: 18, Image: "./image/poori.jpg", Category: CategoryMorningFood},
		{Name: "dosai", Price: 20, Image: "./image/dosai.jpg", Category: CategoryMorningFood},
		{Name: "spl dosai", Price: 40, Image: "./image/spl_dosai.jpg", Category: CategoryMorningFood},

		{Name: "chappathi", Price: 18, Image: "./image/chappathi.jpg", Category: CategoryLunch},
		{Name: "porota", Price: 18, Image: "./image/porota.jpg", Category: CategoryLunch},
		{Name: "kothu porotta", Price: 80, Image: "./image/kothu_porotta.jpg", Category: CategoryLunch},
		{Name: "meals", Price: 70, Image: "./image/meals.jpg", Category: CategoryLunch},

		{Name: "sambar vadai", Price: 15, Image: "./image/sambar_vadai.jpg", Category: CategorySnacks},
		{Name: "curd vadai", Price: 20, Image: "./image/curd_vadai.jpg", Category: CategorySnacks},
		{Name: "plain sandwich", Price: 30, Image: "./image/plain_sandwich.jpg", Category: CategorySnacks},
		{Name: "happy happy", Price: 5, Image: "./image/happy_happy.jpg", Category: CategorySnacks},

		{Name: "five star", Price: 5, Image: "./image/five_star.jpg", Category: CategoryChocolate},
		{Name: "dairy milk", Price: 5, Image: "./image/dairy_milk.jpg", Category: CategoryChocolate},
		{Name: "dairy milk crackle", Price: 45, Image: "./image/dairy_milk_crackle.jpg", Category: CategoryChocolate},

		{Name: "Tea", Price: 12, Image: "./image/Tea.jpg", Category: CategoryDrink},
		{Name: "coffee", Price: 18, Image: "./image/coffee.jpg", Category: CategoryDrink},
		{Name: "badam milk", Price: 30, Image: "./image/badam_milk.jpg", Category: CategoryDrink},
	}
}

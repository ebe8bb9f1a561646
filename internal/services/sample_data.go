package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/models"
)

// sampleProducts is the fixed fallback set served when the store is
// unreachable. Content and ordering are part of the service contract.
var sampleProducts = []models.Product{
	{
		ID:       oid("686f63eb90ac2728b3f11082"),
		Name:     "Smartphone",
		Price:    699,
		Category: "Electronics",
		Variants: []models.Variant{},
	},
	{
		ID:       oid("686f68ed2bf5384209b236af"),
		Name:     "Running Shoes",
		Price:    120,
		Category: "Footwear",
		Variants: []models.Variant{
			{ID: oid("686f68ed2bf5384209b236b0"), Color: "Red", Size: "M", Stock: stock(10)},
			{ID: oid("686f68ed2bf5384209b236b1"), Color: "Blue", Size: "L", Stock: stock(5)},
		},
	},
	{
		ID:       oid("686f68ed2bf5384209b236b2"),
		Name:     "Winter Jacket",
		Price:    260,
		Category: "Apparel",
		Variants: []models.Variant{
			{ID: oid("686f68ed2bf5384209b236b3"), Color: "Black", Size: "S", Stock: stock(8)},
			{ID: oid("686f68ed2bf5384209b236b4"), Color: "Gray", Size: "M", Stock: stock(12)},
		},
	},
	{
		ID:       oid("686f68ed2bf5384209b236b5"),
		Name:     "Gaming Laptop",
		Price:    1299,
		Category: "Electronics",
		Variants: []models.Variant{
			{ID: oid("686f68ed2bf5384209b236b6"), Color: "Black", Size: "15-inch", Stock: stock(3)},
			{ID: oid("686f68ed2bf5384209b236b7"), Color: "Silver", Size: "17-inch", Stock: stock(7)},
		},
	},
}

// SampleProducts returns a copy of the fixed fallback product set.
func SampleProducts() []models.Product {
	out := make([]models.Product, len(sampleProducts))
	for i, p := range sampleProducts {
		p.Variants = append([]models.Variant{}, p.Variants...)
		out[i] = p
	}
	return out
}

func stock(n int) *int {
	return &n
}

func oid(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return id
}

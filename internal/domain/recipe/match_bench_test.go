package recipe

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

const (
	smallDataset  = 100
	mediumDataset = 1000
	largeDataset  = 10000
)

func benchmarkRecipes(b *testing.B, n int) ([]*Recipe, []string) {
	b.Helper()
	faker := gofakeit.New(42)
	owner := uuid.New()

	recipes := make([]*Recipe, 0, n)
	for i := 0; i < n; i++ {
		ings := make([]Ingredient, 0, 8)
		for j := 0; j < 8; j++ {
			ings = append(ings, Ingredient{Name: faker.Vegetable(), Quantity: 1, Unit: "pcs"})
		}
		r, err := NewRecipe(owner, faker.Dessert(), "", ings, []string{"cook"}, 10)
		if err != nil {
			b.Fatal(err)
		}
		recipes = append(recipes, r)
	}

	available := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		available = append(available, faker.Vegetable())
	}
	return recipes, available
}

func BenchmarkMatchByIngredients(b *testing.B) {
	for _, size := range []int{smallDataset, mediumDataset, largeDataset} {
		b.Run(fmt.Sprintf("recipes=%d", size), func(b *testing.B) {
			recipes, available := benchmarkRecipes(b, size)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				MatchByIngredients(recipes, available, 10)
			}
		})
	}
}

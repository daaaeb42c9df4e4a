// Command seed populates a development database with a demo user and a
// handful of recipes so the search and favorites endpoints have data to
// serve.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/database"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
)

var drafts = []service.RecipeDraft{
	{
		Title: "Tomato Basil Soup",
		Ingredients: []models.Ingredient{
			{Name: "Tomatoes", Quantity: "1 kg"},
			{Name: "Basil", Quantity: "1 bunch"},
			{Name: "Cream", Quantity: "200 ml"},
		},
		Instructions: []string{
			"Roast the tomatoes until soft.",
			"Blend with basil and simmer for 15 minutes.",
			"Stir in the cream and season.",
		},
		Tags: []string{"Soup", "Vegetarian"},
	},
	{
		Title: "Garlic Butter Pasta",
		Ingredients: []models.Ingredient{
			{Name: "Spaghetti", Quantity: "400 g"},
			{Name: "Garlic", Quantity: "4 cloves"},
			{Name: "Butter", Quantity: "50 g"},
		},
		Instructions: []string{
			"Cook the spaghetti until al dente.",
			"Melt the butter and fry the garlic gently.",
			"Toss the pasta in the garlic butter.",
		},
		Tags: []string{"Pasta", "Quick"},
	},
	{
		Title: "Green Lentil Salad",
		Ingredients: []models.Ingredient{
			{Name: "Green lentils", Quantity: "250 g"},
			{Name: "Red onion", Quantity: "1"},
			{Name: "Olive oil", Quantity: "3 tbsp"},
		},
		Instructions: []string{
			"Boil the lentils for 20 minutes and drain.",
			"Dice the onion and mix everything with the oil.",
		},
		Tags: []string{"Salad", "Vegan"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)

	user, _, err := authService.Register(ctx, "Demo Cook", "demo@tastebook.dev", "demo-password-1")
	if err != nil {
		if !errors.Is(err, service.ErrEmailTaken) {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Demo user already exists, skipping seed")
		return
	}

	for _, draft := range drafts {
		recipe, err := recipeService.Create(ctx, draft, user.ID)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", draft.Title, err)
		}
		log.Printf("Seeded recipe %q (%s)", recipe.Title, recipe.ID)
	}
}

package memory

import (
	"fmt"
	"sort"
	"strings"

	"pantry/internal/models"
	"pantry/internal/storage"
)

// The recipe cache keeps the same normalized shape as the relational
// backend: a recipe row, a shared ingredient catalog keyed by external id,
// link entries carrying amount and the used/missed flag, and numbered steps.

type recipeRow struct {
	id    int
	title string
	image string
}

type ingredientLink struct {
	ingredientID int
	amount       float64
	used         bool
}

func (s *Store) SaveRecipe(recipe *models.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe is nil", storage.ErrEmptyName)
	}
	if strings.TrimSpace(recipe.Title) == "" {
		return fmt.Errorf("recipe title: %w", storage.ErrEmptyName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recipes[recipe.ID]; exists {
		return storage.ErrRecipeExists
	}

	links := make([]ingredientLink, 0, len(recipe.UsedIngredients)+len(recipe.MissedIngredients))
	for _, ingredient := range recipe.UsedIngredients {
		links = append(links, ingredientLink{ingredientID: ingredient.ID, amount: ingredient.Amount, used: true})
		s.upsertIngredientLocked(ingredient)
	}
	for _, ingredient := range recipe.MissedIngredients {
		links = append(links, ingredientLink{ingredientID: ingredient.ID, amount: ingredient.Amount, used: false})
		s.upsertIngredientLocked(ingredient)
	}

	steps := make(map[int]string, len(recipe.Instructions))
	for step, instruction := range recipe.Instructions {
		steps[step] = instruction
	}

	s.recipes[recipe.ID] = recipeRow{id: recipe.ID, title: recipe.Title, image: recipe.Image}
	s.recipeLinks[recipe.ID] = links
	s.recipeSteps[recipe.ID] = steps

	return nil
}

// upsertIngredientLocked inserts the catalog entry only for new ids; an
// existing ingredient's fields are never overwritten.
func (s *Store) upsertIngredientLocked(ingredient models.Ingredient) {
	if _, exists := s.ingredients[ingredient.ID]; exists {
		return
	}
	s.ingredients[ingredient.ID] = models.Ingredient{
		ID:       ingredient.ID,
		Name:     ingredient.Name,
		Unit:     ingredient.Unit,
		Image:    ingredient.Image,
		Original: ingredient.Original,
	}
}

func (s *Store) RecipeExists(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.recipes[id]
	return exists, nil
}

func (s *Store) ListStarredRecipes() ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.recipes))
	for id := range s.recipes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var recipes []models.Recipe
	for _, id := range ids {
		row := s.recipes[id]
		recipe := models.Recipe{
			ID:                  row.id,
			Title:               row.title,
			Image:               row.image,
			Instructions:        make(map[int]string),
			InstructionsFetched: true,
		}

		links := append([]ingredientLink(nil), s.recipeLinks[id]...)
		sort.Slice(links, func(i, j int) bool { return links[i].ingredientID < links[j].ingredientID })

		for _, link := range links {
			catalog, found := s.ingredients[link.ingredientID]
			if !found {
				continue
			}
			hydrated := catalog
			hydrated.Amount = link.amount
			if link.used {
				recipe.UsedIngredients = append(recipe.UsedIngredients, hydrated)
			} else {
				recipe.MissedIngredients = append(recipe.MissedIngredients, hydrated)
			}
		}

		for step, instruction := range s.recipeSteps[id] {
			recipe.Instructions[step] = instruction
		}

		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func (s *Store) RemoveRecipe(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recipes[id]; !exists {
		return fmt.Errorf("recipe %d: %w", id, storage.ErrNotFound)
	}

	delete(s.recipes, id)
	delete(s.recipeLinks, id)
	delete(s.recipeSteps, id)

	return nil
}

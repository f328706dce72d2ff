package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"pantry/internal/models"
	"pantry/internal/storage"
)

// SaveRecipe stars a recipe: the recipe row, ingredient upserts, link rows
// carrying amount and the used/missed flag, and the numbered instructions
// all land in one transaction. Any failure rolls the whole write back so a
// half-written recipe is never visible.
func (s *Store) SaveRecipe(recipe *models.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe is nil", storage.ErrEmptyName)
	}
	if strings.TrimSpace(recipe.Title) == "" {
		return fmt.Errorf("recipe title: %w", storage.ErrEmptyName)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM recipes WHERE id = ?)`, recipe.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check recipe existence: %w", err)
	}
	if exists {
		return storage.ErrRecipeExists
	}

	if _, err := tx.Exec(`INSERT INTO recipes (id, title, image) VALUES (?, ?, ?)`,
		recipe.ID, recipe.Title, recipe.Image); err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	for _, ingredient := range recipe.UsedIngredients {
		if err := linkIngredient(tx, recipe.ID, ingredient, true); err != nil {
			return err
		}
	}
	for _, ingredient := range recipe.MissedIngredients {
		if err := linkIngredient(tx, recipe.ID, ingredient, false); err != nil {
			return err
		}
	}

	for step, instruction := range recipe.Instructions {
		if _, err := tx.Exec(`INSERT INTO recipe_instructions (recipe_id, step_number, instruction) VALUES (?, ?, ?)`,
			recipe.ID, step, instruction); err != nil {
			return fmt.Errorf("failed to insert instruction step %d: %w", step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe save: %w", err)
	}

	return nil
}

// linkIngredient inserts the ingredient row only if the id is new, never
// overwriting an existing ingredient's fields, then adds the link row.
func linkIngredient(tx *sql.Tx, recipeID int, ingredient models.Ingredient, used bool) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingredients WHERE id = ?)`, ingredient.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check ingredient existence: %w", err)
	}

	if !exists {
		if _, err := tx.Exec(`INSERT INTO ingredients (id, name, unit, image, original) VALUES (?, ?, ?, ?, ?)`,
			ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.Image, ingredient.Original); err != nil {
			return fmt.Errorf("failed to insert ingredient %d: %w", ingredient.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, is_used) VALUES (?, ?, ?, ?)`,
		recipeID, ingredient.ID, ingredient.Amount, used); err != nil {
		return fmt.Errorf("failed to link ingredient %d: %w", ingredient.ID, err)
	}

	return nil
}

func (s *Store) RecipeExists(id int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM recipes WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recipe existence: %w", err)
	}
	return exists, nil
}

// ListStarredRecipes hydrates every starred recipe with three queries total:
// the recipe rows, one ingredient join filtered to the collected ids, and
// one instruction query ordered by (recipe_id, step_number). Query count
// stays constant no matter how many recipes are starred.
func (s *Store) ListStarredRecipes() ([]models.Recipe, error) {
	rows, err := s.db.Query(`SELECT id, title, image FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	var ids []int
	index := make(map[int]*models.Recipe)

	for rows.Next() {
		var recipe models.Recipe
		var image sql.NullString
		if err := rows.Scan(&recipe.ID, &recipe.Title, &image); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipe.Image = image.String
		recipe.Instructions = make(map[int]string)
		recipe.InstructionsFetched = true
		recipes = append(recipes, recipe)
		ids = append(ids, recipe.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	if len(recipes) == 0 {
		return recipes, nil
	}

	for i := range recipes {
		index[recipes[i].ID] = &recipes[i]
	}

	if err := s.attachIngredients(index, ids); err != nil {
		return nil, err
	}
	if err := s.attachInstructions(index, ids); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (s *Store) attachIngredients(index map[int]*models.Recipe, ids []int) error {
	query := `
		SELECT ri.recipe_id, i.id, i.name, ri.amount, ri.is_used, i.unit, i.image, i.original
		FROM ingredients i
		JOIN recipe_ingredients ri ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (` + placeholders(len(ids)) + `)
		ORDER BY ri.recipe_id, i.id
	`

	rows, err := s.db.Query(query, intArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int
		var used bool
		var ingredient models.Ingredient
		var unit, image, original sql.NullString

		if err := rows.Scan(&recipeID, &ingredient.ID, &ingredient.Name, &ingredient.Amount,
			&used, &unit, &image, &original); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		ingredient.Unit = unit.String
		ingredient.Image = image.String
		ingredient.Original = original.String

		recipe, ok := index[recipeID]
		if !ok {
			continue
		}
		// The link row decides used versus missed; reloaded recipes keep the
		// same split they were saved with.
		if used {
			recipe.UsedIngredients = append(recipe.UsedIngredients, ingredient)
		} else {
			recipe.MissedIngredients = append(recipe.MissedIngredients, ingredient)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe ingredients: %w", err)
	}

	return nil
}

func (s *Store) attachInstructions(index map[int]*models.Recipe, ids []int) error {
	query := `
		SELECT recipe_id, step_number, instruction
		FROM recipe_instructions
		WHERE recipe_id IN (` + placeholders(len(ids)) + `)
		ORDER BY recipe_id, step_number
	`

	rows, err := s.db.Query(query, intArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to query recipe instructions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID, step int
		var instruction string
		if err := rows.Scan(&recipeID, &step, &instruction); err != nil {
			return fmt.Errorf("failed to scan instruction: %w", err)
		}
		if recipe, ok := index[recipeID]; ok {
			recipe.Instructions[step] = instruction
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating instructions: %w", err)
	}

	return nil
}

// RemoveRecipe unstars a recipe, deleting its row together with every link
// and instruction row in one transaction. Shared ingredient rows stay; other
// recipes may reference them.
func (s *Store) RemoveRecipe(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("recipe %d: %w", id, storage.ErrNotFound)
	}

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recipe links: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM recipe_instructions WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recipe instructions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe delete: %w", err)
	}

	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func intArgs(ids []int) []interface{} {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	args := make([]interface{}, len(sorted))
	for i, id := range sorted {
		args[i] = id
	}
	return args
}

package models

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeTag{},
		&Rating{},
		&Comment{},
		&SavedRecipe{},
		&SystemLog{},
	}
}

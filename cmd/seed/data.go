package main

import "github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"

var sampleUsers = []dto.RegisterRequest{
	{Username: "ChefAlice", Email: "alice@example.com", Password: "password1"},
	{Username: "BakerBob", Email: "bob@example.com", Password: "password2"},
	{Username: "CookCharlie", Email: "charlie@example.com", Password: "password3"},
	{Username: "DinerDave", Email: "dave@example.com", Password: "password4"},
	{Username: "EaterEve", Email: "eve@example.com", Password: "password5"},
}

func minutes(n int) *int { return &n }

func image(url string) *string { return &url }

var sampleRecipes = []dto.CreateRecipeRequest{
	{
		Title:        "Classic Pancakes",
		Ingredients:  []string{"1 cup all-purpose flour", "1 tbsp sugar", "2 tsp baking powder", "1/2 tsp salt", "1 cup milk", "1 large egg", "2 tbsp melted butter"},
		Instructions: "1. Whisk the dry ingredients.\n2. Beat the egg with milk and butter.\n3. Combine until just blended.\n4. Cook 1/4 cup portions on a hot skillet until bubbles form, then flip.",
		Image:        image("https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?auto=format&fit=crop&w=600&q=80"),
		Tags:         []string{"breakfast", "easy", "pancakes"},
		PrepTime:     minutes(10),
		CookTime:     minutes(15),
		Servings:     minutes(4),
		Difficulty:   "easy",
	},
	{
		Title:        "Vegetable Stir Fry",
		Ingredients:  []string{"2 cups broccoli florets", "1 red bell pepper, sliced", "1 carrot, julienned", "1 zucchini, sliced", "2 tbsp soy sauce", "1 tbsp sesame oil", "2 cloves garlic, minced"},
		Instructions: "1. Heat oil in a wok over high heat.\n2. Fry garlic for 30 seconds.\n3. Add vegetables and stir-fry 4-5 minutes.\n4. Toss with soy sauce and sesame oil.",
		Tags:         []string{"vegetarian", "dinner", "quick"},
		PrepTime:     minutes(15),
		CookTime:     minutes(10),
		Servings:     minutes(2),
		Difficulty:   "medium",
	},
	{
		Title:        "Chocolate Chip Cookies",
		Ingredients:  []string{"2 1/4 cups all-purpose flour", "1 tsp baking soda", "1 cup butter, softened", "3/4 cup sugar", "3/4 cup brown sugar", "2 large eggs", "2 cups chocolate chips"},
		Instructions: "1. Preheat oven to 190C.\n2. Cream butter and sugars, then beat in eggs.\n3. Mix in flour and baking soda, then the chips.\n4. Bake spoonfuls for 9-11 minutes.",
		Tags:         []string{"dessert", "baking", "cookies"},
		PrepTime:     minutes(20),
		CookTime:     minutes(10),
		Servings:     minutes(24),
		Difficulty:   "easy",
	},
	{
		Title:        "Grilled Chicken Salad",
		Ingredients:  []string{"2 chicken breasts", "4 cups mixed greens", "1 cup cherry tomatoes", "1 cucumber, sliced", "2 tbsp olive oil", "1 tbsp lemon juice"},
		Instructions: "1. Season and grill the chicken 6-7 minutes per side.\n2. Rest, then slice.\n3. Toss greens, tomatoes and cucumber with oil and lemon.\n4. Top with chicken.",
		Tags:         []string{"salad", "healthy", "lunch"},
		PrepTime:     minutes(15),
		CookTime:     minutes(15),
		Servings:     minutes(2),
		Difficulty:   "easy",
	},
	{
		Title:        "Spaghetti Bolognese",
		Ingredients:  []string{"400g spaghetti", "500g ground beef", "1 onion, chopped", "2 cloves garlic", "800g crushed tomatoes", "2 tbsp tomato paste"},
		Instructions: "1. Brown the beef.\n2. Soften onion and garlic.\n3. Add tomatoes and paste and simmer 30 minutes.\n4. Serve over cooked spaghetti.",
		Tags:         []string{"pasta", "italian", "dinner"},
		PrepTime:     minutes(15),
		CookTime:     minutes(45),
		Servings:     minutes(4),
		Difficulty:   "medium",
	},
	{
		Title:        "Avocado Toast",
		Ingredients:  []string{"2 slices sourdough", "1 ripe avocado", "1 tsp lemon juice", "pinch of chili flakes", "salt and pepper"},
		Instructions: "1. Toast the bread.\n2. Mash avocado with lemon, salt and pepper.\n3. Spread and finish with chili flakes.",
		Tags:         []string{"breakfast", "quick", "vegetarian"},
		PrepTime:     minutes(5),
		CookTime:     minutes(3),
		Servings:     minutes(1),
		Difficulty:   "easy",
	},
	{
		Title:        "Chicken Tikka Masala",
		Ingredients:  []string{"500g chicken thighs", "1 cup yogurt", "2 tbsp garam masala", "1 onion", "400g tomato puree", "1/2 cup cream"},
		Instructions: "1. Marinate chicken in yogurt and spices.\n2. Grill or sear until charred.\n3. Simmer onion and tomato puree, then add cream.\n4. Add chicken and simmer 10 minutes.",
		Tags:         []string{"indian", "curry", "dinner"},
		PrepTime:     minutes(30),
		CookTime:     minutes(40),
		Servings:     minutes(4),
		Difficulty:   "hard",
	},
	{
		Title:        "Greek Yogurt Parfait",
		Ingredients:  []string{"1 cup Greek yogurt", "1/2 cup granola", "1/2 cup mixed berries", "1 tbsp honey"},
		Instructions: "1. Layer yogurt, granola and berries in a glass.\n2. Drizzle with honey.",
		Tags:         []string{"breakfast", "healthy", "quick"},
		PrepTime:     minutes(5),
		Servings:     minutes(1),
		Difficulty:   "easy",
	},
	{
		Title:        "Margherita Pizza",
		Ingredients:  []string{"1 pizza dough", "1/2 cup tomato sauce", "200g fresh mozzarella", "fresh basil", "1 tbsp olive oil"},
		Instructions: "1. Heat the oven as hot as it goes.\n2. Stretch the dough and spread the sauce.\n3. Add mozzarella and bake 10-12 minutes.\n4. Finish with basil and oil.",
		Tags:         []string{"pizza", "italian", "vegetarian"},
		PrepTime:     minutes(20),
		CookTime:     minutes(12),
		Servings:     minutes(2),
		Difficulty:   "medium",
	},
	{
		Title:        "Berry Smoothie",
		Ingredients:  []string{"1 cup frozen berries", "1 banana", "1 cup almond milk", "1 tbsp chia seeds"},
		Instructions: "1. Blend everything until smooth.",
		Tags:         []string{"drink", "healthy", "quick"},
		PrepTime:     minutes(5),
		Servings:     minutes(2),
		Difficulty:   "easy",
	},
}

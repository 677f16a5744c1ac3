// Command seed fills the database with sample users and recipes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/cache"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/database"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/logging"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	reset := flag.Bool("reset", false, "delete all users, recipes and comments first")
	perUser := flag.Int("per-user", 2, "recipes to create for each sample user; titles a user already owns are skipped")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg.AppEnv)
	if cfg.JWTSecret == "" {
		// tokens are discarded; any key will do
		cfg.JWTSecret = "seed"
	}

	if *perUser < 0 || *perUser*len(sampleUsers) > len(sampleRecipes) {
		return fmt.Errorf("per-user must be between 0 and %d", len(sampleRecipes)/len(sampleUsers))
	}

	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer database.Close()
	if err := database.Migrate(database.DB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if *reset {
		if err := truncate(database.DB); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		slog.Info("existing data cleared")
	}

	created, err := seed(context.Background(), database.DB, cfg, *perUser)
	if err != nil {
		return err
	}
	slog.Info("seed completed", "users", len(sampleUsers), "recipes", created)
	return nil
}

// seed creates the sample users and hands each the next perUser sample
// recipes. Recipes whose title the user already owns are skipped, so running
// it again adds nothing. It returns the number of recipes created.
func seed(ctx context.Context, db *gorm.DB, cfg *config.Config, perUser int) (int, error) {
	auth := services.NewAuthService(db, cfg)
	recipes := services.NewRecipeService(db, cache.Noop{}, 0)

	created, next := 0, 0
	for _, u := range sampleUsers {
		sess, err := ensureUser(ctx, auth, u)
		if err != nil {
			return created, fmt.Errorf("user %s: %w", u.Username, err)
		}

		n := 0
		for _, r := range sampleRecipes[next : next+perUser] {
			r := r
			var owned int64
			if err := db.WithContext(ctx).Model(&models.Recipe{}).
				Where("created_by = ? AND title = ?", sess.UserID, r.Title).
				Count(&owned).Error; err != nil {
				return created, fmt.Errorf("recipe %q: %w", r.Title, err)
			}
			if owned > 0 {
				continue
			}
			if _, err := recipes.Create(ctx, sess, &r); err != nil {
				return created, fmt.Errorf("recipe %q: %w", r.Title, err)
			}
			n++
		}
		next += perUser
		created += n
		slog.Info("seeded user", "username", u.Username, "recipes", n)
	}
	return created, nil
}

// ensureUser registers u, or logs in when the account already exists.
func ensureUser(ctx context.Context, auth *services.AuthService, u dto.RegisterRequest) (session.Session, error) {
	req := u
	resp, err := auth.Register(ctx, &req)
	if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrUsernameTaken) {
		resp, err = auth.Login(ctx, &dto.LoginRequest{Email: u.Email, Password: u.Password})
	}
	if err != nil {
		return session.Anonymous(), err
	}
	return session.ForUser(resp.User.ID), nil
}

func truncate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Comment{},
			&models.Rating{},
			&models.RecipeTag{},
			&models.RecipeIngredient{},
			&models.SavedRecipe{},
			&models.Recipe{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package store

import (
	"context"

	errors "github.com/goliatone/go-errors"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

// SeedOptions configures the initial records loaded on an empty store.
// Role escalation to admin happens only here, never through a route.
type SeedOptions struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// Seed loads the admin account and a starter catalog when they are not
// present. Safe to run on every start.
func Seed(ctx context.Context, repo RepositoryManager, hasher auth.PasswordHasher, opts SeedOptions) error {
	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		if err := seedAdmin(ctx, repo, hasher, opts); err != nil {
			return err
		}
	}

	return seedProducts(ctx, repo)
}

func seedAdmin(ctx context.Context, repo RepositoryManager, hasher auth.PasswordHasher, opts SeedOptions) error {
	if _, err := repo.Users().GetByEmail(ctx, opts.AdminEmail); err == nil {
		return nil
	} else if !errors.IsNotFound(err) {
		return err
	}

	hash, err := hasher.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}

	name := opts.AdminName
	if name == "" {
		name = "Admin"
	}

	_, err = repo.Users().Register(ctx, &auth.User{
		Email:        opts.AdminEmail,
		Name:         name,
		Role:         auth.RoleAdmin,
		PasswordHash: hash,
	})
	return err
}

func seedProducts(ctx context.Context, repo RepositoryManager) error {
	existing, err := repo.Products().List(ctx, ProductFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []*Product{
		{
			Name:               "Макара Tica Perf Pursuit PS 3000",
			Description:        "Висококачествена риболовна макара за спининг. Плавно действие, издръжлива конструкция.",
			Price:              109.90,
			PriceEUR:           56.19,
			Category:           "Макари",
			ImageURL:           "https://images.unsplash.com/photo-1533745848184-3db07256e163?w=400",
			Stock:              15,
			DiscountPercentage: 20,
		},
		{
			Name:               "Детски комплект за спининг Kinetic Ramasjang CC Pink",
			Description:        "Перфектен комплект за начинаещи и деца. Дължина 1.65m, тест 5-24g.",
			Price:              69.00,
			PriceEUR:           35.28,
			Category:           "Комплекти",
			ImageURL:           "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400",
			Stock:              8,
			DiscountPercentage: 15,
		},
		{
			Name:        "Плетено влакно PowerPro 150м",
			Description: "4-жилно плетено влакно с висока издръжливост. Налично в различни дебелини.",
			Price:       45.00,
			PriceEUR:    23.01,
			Category:    "Влакна",
			ImageURL:    "https://images.unsplash.com/photo-1544552866-d3ed42536cfd?w=400",
			Stock:       30,
		},
	}

	for _, product := range samples {
		if _, err := repo.Products().Save(ctx, product); err != nil {
			return err
		}
	}

	return nil
}

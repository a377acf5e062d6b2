package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Category    string
	PriceCents  int64
	Stock       int
	Description string
	ImageURL    string
}

const (
	defaultAdminName     = "Admin User"
	defaultAdminEmail    = "admin@grocerystore.com"
	defaultAdminPassword = "admin123"
)

// Apply inserts sample catalog data and the default admin account.
// It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range sampleProducts {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureAdmin(ctx, pool, defaultAdminName, defaultAdminEmail, defaultAdminPassword); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	return nil
}

var sampleProducts = []productSeed{
	{Name: "Fresh Apples", Category: "fruits", PriceCents: 150, Stock: 100, Description: "Fresh and crisp red apples", ImageURL: "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=300"},
	{Name: "Bananas", Category: "fruits", PriceCents: 60, Stock: 150, Description: "Fresh yellow bananas", ImageURL: "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=300"},
	{Name: "Tomatoes", Category: "vegetables", PriceCents: 80, Stock: 100, Description: "Fresh red tomatoes", ImageURL: "https://images.unsplash.com/photo-1546094096-0df4bcaaa337?w=300"},
	{Name: "Carrots", Category: "vegetables", PriceCents: 50, Stock: 120, Description: "Fresh organic carrots", ImageURL: "https://images.unsplash.com/photo-1598170845058-32b9d6a5da37?w=300"},
	{Name: "Milk", Category: "dairy", PriceCents: 60, Stock: 100, Description: "Fresh whole milk 1L", ImageURL: "https://images.unsplash.com/photo-1563636619-e9143da7973b?w=300"},
	{Name: "Cheese", Category: "dairy", PriceCents: 200, Stock: 50, Description: "Premium cheddar cheese", ImageURL: "https://images.unsplash.com/photo-1486297678162-eb2a19b0a32d?w=300"},
	{Name: "Potato Chips", Category: "snacks", PriceCents: 50, Stock: 100, Description: "Crispy potato chips", ImageURL: "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300"},
	{Name: "Cookies", Category: "snacks", PriceCents: 80, Stock: 80, Description: "Chocolate chip cookies", ImageURL: "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?w=300"},
	{Name: "Cola", Category: "beverages", PriceCents: 45, Stock: 100, Description: "Refreshing cola drink 500ml", ImageURL: "https://images.unsplash.com/photo-1554866585-cd94860890b7?w=300"},
	{Name: "Orange Juice", Category: "beverages", PriceCents: 90, Stock: 70, Description: "Fresh orange juice 1L", ImageURL: "https://images.unsplash.com/photo-1600271886742-f049cd451bba?w=300"},
	{Name: "Chicken Breast", Category: "meat", PriceCents: 350, Stock: 50, Description: "Fresh chicken breast 500g", ImageURL: "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=300"},
	{Name: "Ground Beef", Category: "meat", PriceCents: 400, Stock: 40, Description: "Fresh ground beef 500g", ImageURL: "https://images.unsplash.com/photo-1603048297172-c92544798d5a?w=300"},
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, category, price_cents, stock, description, image_url)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name, category) DO UPDATE SET
    price_cents = EXCLUDED.price_cents,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, p.Name, p.Category, p.PriceCents, p.Stock, p.Description, p.ImageURL)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
INSERT INTO admins (name, email, password_hash)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO NOTHING
`, name, email, string(hashed))
	return err
}

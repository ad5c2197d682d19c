package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedData struct {
	CuisineTypes []struct {
		Name       string   `yaml:"name"`
		Categories []string `yaml:"categories"`
	} `yaml:"cuisine_types"`
	Regions []struct {
		Province     string `yaml:"province"`
		District     string `yaml:"district"`
		Neighborhood string `yaml:"neighborhood"`
	} `yaml:"regions"`
	Tags           []string         `yaml:"tags"`
	SocialChannels []string         `yaml:"social_channels"`
	Restaurants    []seedRestaurant `yaml:"restaurants"`
	Articles       []seedArticle    `yaml:"articles"`
}

type seedRestaurant struct {
	Name          string   `yaml:"name"`
	BranchName    string   `yaml:"branch_name"`
	Address       string   `yaml:"address"`
	Phone         string   `yaml:"phone"`
	Latitude      string   `yaml:"latitude"`
	Longitude     string   `yaml:"longitude"`
	Description   string   `yaml:"description"`
	Feature       string   `yaml:"feature"`
	StartTime     string   `yaml:"start_time"`
	EndTime       string   `yaml:"end_time"`
	LastOrderTime string   `yaml:"last_order_time"`
	Category      string   `yaml:"category"`
	Region        string   `yaml:"region"`
	Tags          []string `yaml:"tags"`
	Images        []struct {
		Image          string `yaml:"image"`
		Name           string `yaml:"name"`
		Representative bool   `yaml:"representative"`
		Order          int64  `yaml:"order"`
	} `yaml:"images"`
	Menus []struct {
		Name  string `yaml:"name"`
		Price int64  `yaml:"price"`
	} `yaml:"menus"`
	Reviews []struct {
		Title   string `yaml:"title"`
		Author  string `yaml:"author"`
		Channel string `yaml:"channel"`
		Rating  int    `yaml:"rating"`
		Content string `yaml:"content"`
	} `yaml:"reviews"`
}

type seedArticle struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Content     string `yaml:"content"`
	ShowAtIndex bool   `yaml:"show_at_index"`
	IsPublished bool   `yaml:"is_published"`
}

// Seed populates the database with development fixtures from the embedded
// seed.yaml. It does nothing when any restaurant already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM restaurants").Scan(&count); err != nil {
		return fmt.Errorf("seed check restaurants: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("seed parse fixtures: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	categories := make(map[string]uuid.UUID)
	for _, ct := range data.CuisineTypes {
		var typeID uuid.UUID
		if err := tx.QueryRow(
			"INSERT INTO cuisine_types (name) VALUES ($1) RETURNING id", ct.Name,
		).Scan(&typeID); err != nil {
			return fmt.Errorf("seed cuisine type %q: %w", ct.Name, err)
		}
		for _, name := range ct.Categories {
			var id uuid.UUID
			if err := tx.QueryRow(
				"INSERT INTO restaurant_categories (name, cuisine_type_id) VALUES ($1, $2) RETURNING id",
				name, typeID,
			).Scan(&id); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
			categories[name] = id
		}
	}

	regions := make(map[string]uuid.UUID)
	for _, r := range data.Regions {
		var id uuid.UUID
		if err := tx.QueryRow(`
			INSERT INTO regions (province, district, neighborhood) VALUES ($1, $2, $3)
			ON CONFLICT (province, district, neighborhood) DO UPDATE SET province = EXCLUDED.province
			RETURNING id`,
			r.Province, r.District, r.Neighborhood,
		).Scan(&id); err != nil {
			return fmt.Errorf("seed region: %w", err)
		}
		regions[r.Province+" "+r.District+" "+r.Neighborhood] = id
	}

	tags := make(map[string]uuid.UUID)
	for _, name := range data.Tags {
		var id uuid.UUID
		if err := tx.QueryRow(`
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name,
		).Scan(&id); err != nil {
			return fmt.Errorf("seed tag %q: %w", name, err)
		}
		tags[name] = id
	}

	channels := make(map[string]uuid.UUID)
	for _, name := range data.SocialChannels {
		var id uuid.UUID
		if err := tx.QueryRow(
			"INSERT INTO social_channels (name) VALUES ($1) RETURNING id", name,
		).Scan(&id); err != nil {
			return fmt.Errorf("seed social channel %q: %w", name, err)
		}
		channels[name] = id
	}

	for _, r := range data.Restaurants {
		if err := seedRestaurantRows(tx, r, categories, regions, tags, channels); err != nil {
			return err
		}
	}

	for _, a := range data.Articles {
		if _, err := tx.Exec(`
			INSERT INTO articles (title, slug, content, show_at_index, is_published)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO NOTHING`,
			a.Title, a.Slug, a.Content, a.ShowAtIndex, a.IsPublished,
		); err != nil {
			return fmt.Errorf("seed article %q: %w", a.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development fixtures",
		"restaurants", len(data.Restaurants),
		"articles", len(data.Articles),
	)
	return nil
}

func seedRestaurantRows(tx *sql.Tx, r seedRestaurant, categories, regions, tags, channels map[string]uuid.UUID) error {
	var restaurantID uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO restaurants (
			name, branch_name, description, address, feature, phone,
			latitude, longitude, start_time, end_time, last_order_time,
			category_id, region_id
		) VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::numeric, 0), COALESCE($8::numeric, 0), $9::time, $10::time, $11::time, $12, $13)
		RETURNING id`,
		r.Name, nullString(r.BranchName), nullString(r.Description), r.Address,
		nullString(r.Feature), r.Phone,
		nullString(r.Latitude), nullString(r.Longitude),
		nullString(r.StartTime), nullString(r.EndTime), nullString(r.LastOrderTime),
		lookup(categories, r.Category), lookup(regions, r.Region),
	).Scan(&restaurantID)
	if err != nil {
		return fmt.Errorf("seed restaurant %q: %w", r.Name, err)
	}

	for _, name := range r.Tags {
		id, ok := tags[name]
		if !ok {
			return fmt.Errorf("seed restaurant %q: unknown tag %q", r.Name, name)
		}
		if _, err := tx.Exec(
			"INSERT INTO restaurant_tags (restaurant_id, tag_id) VALUES ($1, $2)", restaurantID, id,
		); err != nil {
			return fmt.Errorf("seed restaurant tag: %w", err)
		}
	}

	for _, img := range r.Images {
		if _, err := tx.Exec(`
			INSERT INTO restaurant_images (restaurant_id, is_representative, sort_order, name, image)
			VALUES ($1, $2, $3, $4, $5)`,
			restaurantID, img.Representative, img.Order, nullString(img.Name), img.Image,
		); err != nil {
			return fmt.Errorf("seed restaurant image: %w", err)
		}
	}

	for _, m := range r.Menus {
		if _, err := tx.Exec(
			"INSERT INTO restaurant_menus (restaurant_id, name, price) VALUES ($1, $2, $3)",
			restaurantID, m.Name, m.Price,
		); err != nil {
			return fmt.Errorf("seed restaurant menu: %w", err)
		}
	}

	for _, rv := range r.Reviews {
		if _, err := tx.Exec(`
			INSERT INTO reviews (restaurant_id, title, author, content, rating, social_channel_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			restaurantID, rv.Title, rv.Author, rv.Content, rv.Rating, lookup(channels, rv.Channel),
		); err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// lookup returns the id for name, or NULL when the fixture omits it.
func lookup(ids map[string]uuid.UUID, name string) uuid.NullUUID {
	id, ok := ids[name]
	return uuid.NullUUID{UUID: id, Valid: ok}
}

package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/rubms01/ai-restaurant/internal/models"
	"github.com/rubms01/ai-restaurant/internal/validation"
)

func countRepresentatives(t *testing.T, s *RestaurantImageStore, r *models.Restaurant) int {
	t.Helper()
	images, err := s.ListByRestaurant(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("ListByRestaurant: %v", err)
	}
	n := 0
	for _, img := range images {
		if img.IsRepresentative {
			n++
		}
	}
	return n
}

func TestRestaurantImageSecondRepresentativeRejected(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)
	ctx := context.Background()
	r := createRestaurant(t, db, uniqueName("bon-steak"), nil)

	first, err := s.Create(ctx, &models.RestaurantImage{
		RestaurantID: r.ID, IsRepresentative: true, Image: "restaurant/first.jpg",
	})
	if err != nil {
		t.Fatalf("first representative: %v", err)
	}

	_, err = s.Create(ctx, &models.RestaurantImage{
		RestaurantID: r.ID, IsRepresentative: true, Image: "restaurant/second.jpg",
	})
	if !errors.Is(err, validation.ErrMultipleRepresentativeImages) {
		t.Fatalf("second representative: got %v, want ErrMultipleRepresentativeImages", err)
	}

	// A non-representative image is always accepted.
	if _, err := s.Create(ctx, &models.RestaurantImage{
		RestaurantID: r.ID, Image: "restaurant/third.jpg",
	}); err != nil {
		t.Fatalf("non-representative image: %v", err)
	}

	if n := countRepresentatives(t, s, r); n != 1 {
		t.Errorf("representative images = %d, want 1", n)
	}

	images, _ := s.ListByRestaurant(ctx, r.ID)
	if len(images) == 0 || images[0].ID != first.ID {
		t.Error("expected the representative image to be listed first")
	}
}

func TestRestaurantImageUpdateRepresentativeOtherFields(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)
	ctx := context.Background()
	r := createRestaurant(t, db, uniqueName("bon-steak"), nil)

	img, err := s.Create(ctx, &models.RestaurantImage{
		RestaurantID: r.ID, IsRepresentative: true, Image: "restaurant/a.jpg",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order := int64(3)
	img.Name = strPtr("외관")
	img.Order = &order
	updated, err := s.Update(ctx, img)
	if err != nil {
		t.Fatalf("Update of the representative image itself: %v", err)
	}
	if updated == nil || updated.Name == nil || *updated.Name != "외관" {
		t.Errorf("Update did not persist name: %+v", updated)
	}
	if !updated.IsRepresentative {
		t.Error("image lost its representative flag")
	}
}

func TestRestaurantImageUpdateToRepresentativeRejected(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)
	ctx := context.Background()
	r := createRestaurant(t, db, uniqueName("bon-steak"), nil)

	if _, err := s.Create(ctx, &models.RestaurantImage{
		RestaurantID: r.ID, IsRepresentative: true, Image: "restaurant/a.jpg",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, err := s.Create(ctx, &models.RestaurantImage{RestaurantID: r.ID, Image: "restaurant/b.jpg"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	other.IsRepresentative = true
	if _, err := s.Update(ctx, other); !errors.Is(err, validation.ErrMultipleRepresentativeImages) {
		t.Fatalf("Update: got %v, want ErrMultipleRepresentativeImages", err)
	}
}

func TestRestaurantImageScopePerRestaurant(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)
	ctx := context.Background()
	a := createRestaurant(t, db, uniqueName("a"), nil)
	b := createRestaurant(t, db, uniqueName("b"), nil)

	if _, err := s.Create(ctx, &models.RestaurantImage{
		RestaurantID: b.ID, IsRepresentative: true, Image: "restaurant/b.jpg",
	}); err != nil {
		t.Fatalf("representative for B: %v", err)
	}
	if _, err := s.Create(ctx, &models.RestaurantImage{
		RestaurantID: a.ID, IsRepresentative: true, Image: "restaurant/a.jpg",
	}); err != nil {
		t.Fatalf("representative for A blocked by B: %v", err)
	}

	if n := countRepresentatives(t, s, b); n != 1 {
		t.Errorf("B representative images = %d, want 1", n)
	}
}

func TestRestaurantImageSetRepresentative(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)
	ctx := context.Background()
	r := createRestaurant(t, db, uniqueName("bon-steak"), nil)

	first, _ := s.Create(ctx, &models.RestaurantImage{RestaurantID: r.ID, IsRepresentative: true, Image: "restaurant/a.jpg"})
	second, err := s.Create(ctx, &models.RestaurantImage{RestaurantID: r.ID, Image: "restaurant/b.jpg"})
	if err != nil || first == nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.SetRepresentative(ctx, second.ID)
	if err != nil {
		t.Fatalf("SetRepresentative: %v", err)
	}
	if got == nil || !got.IsRepresentative {
		t.Fatalf("SetRepresentative returned %+v", got)
	}

	reloaded, _ := s.FindByID(ctx, first.ID)
	if reloaded.IsRepresentative {
		t.Error("previous representative image kept its flag")
	}
	if n := countRepresentatives(t, s, r); n != 1 {
		t.Errorf("representative images = %d, want 1", n)
	}
}

// TestRestaurantImageConcurrentRepresentative races several writers for the
// same restaurant; exactly one may win.
func TestRestaurantImageConcurrentRepresentative(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)
	ctx := context.Background()
	r := createRestaurant(t, db, uniqueName("race"), nil)

	const writers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, &models.RestaurantImage{
				RestaurantID: r.ID, IsRepresentative: true, Image: "restaurant/race.jpg",
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			if !errors.Is(err, validation.ErrMultipleRepresentativeImages) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d writers succeeded, want 1", wins)
	}
	if n := countRepresentatives(t, s, r); n != 1 {
		t.Errorf("representative images = %d, want 1", n)
	}
}

func TestRestaurantImageMissingRestaurant(t *testing.T) {
	db := testDB(t)
	s := NewRestaurantImageStore(db)

	_, err := s.Create(context.Background(), &models.RestaurantImage{
		RestaurantID: uuid.New(), Image: "restaurant/orphan.jpg",
	})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields[0].Field != "restaurant_id" {
		t.Fatalf("Create: got %v, want restaurant_id field error", err)
	}
}

// TestRepresentativeIndexBackstop writes around the store and checks that
// the database still refuses a second representative image.
func TestRepresentativeIndexBackstop(t *testing.T) {
	db := testDB(t)
	r := createRestaurant(t, db, uniqueName("backstop"), nil)

	insert := `INSERT INTO restaurant_images (restaurant_id, is_representative, image) VALUES ($1, TRUE, 'x.jpg')`
	if _, err := db.Exec(insert, r.ID); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := db.Exec(insert, r.ID)
	if !errors.Is(mapError(err), validation.ErrMultipleRepresentativeImages) {
		t.Fatalf("second insert: got %v, want representative index violation", err)
	}
}

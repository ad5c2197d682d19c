// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rubms01/ai-restaurant/internal/models"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	want := []string{
		Articles, CuisineTypes, Regions, RestaurantCategories,
		Restaurants, Reviews, SocialChannels, Tags,
	}
	all := r.All()
	if len(all) != len(want) {
		t.Fatalf("registered %d model admins, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("All()[%d] = %q, want %q", i, all[i].Name, name)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ModelAdmin{Name: Tags}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(&ModelAdmin{Name: Tags}); err == nil {
		t.Error("second Register of the same name succeeded")
	}
	if err := r.Register(&ModelAdmin{}); err == nil {
		t.Error("Register with empty name succeeded")
	}
	if r.Get("missing") != nil {
		t.Error("Get of unknown name returned a model admin")
	}
}

func TestArticleAdmin(t *testing.T) {
	m := Default().Get(Articles)
	if !m.HasAction(ActionMakePublished) {
		t.Error("articles: make_published action missing")
	}
	if m.HasAction("delete_everything") {
		t.Error("articles: unknown action reported as registered")
	}
	if m.DateHierarchy != "created_at" {
		t.Errorf("articles: date hierarchy = %q, want created_at", m.DateHierarchy)
	}
}

func TestRestaurantAdmin(t *testing.T) {
	m := Default().Get(Restaurants)

	for _, f := range []string{"rating", "rating_count"} {
		if !m.IsReadonly(f) {
			t.Errorf("restaurants: %s should be read-only", f)
		}
	}
	if m.IsReadonly("name") {
		t.Error("restaurants: name should be editable")
	}

	inlines := map[string]bool{}
	for _, in := range m.Inlines {
		inlines[in.Name] = true
	}
	if !inlines["menus"] || !inlines["images"] {
		t.Errorf("restaurants: inlines = %+v, want menus and images", m.Inlines)
	}
}

func TestProjectRestaurant(t *testing.T) {
	m := Default().Get(Restaurants)
	branch := "Gangnam"
	r := &models.Restaurant{
		ID:          uuid.New(),
		Name:        "Bon Steak",
		BranchName:  &branch,
		Address:     "서울 강남구",
		Phone:       "+8225551234",
		Rating:      decimal.RequireFromString("4.50"),
		RatingCount: 12,
	}

	row, err := m.Project(r)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if row["name"] != "Bon Steak" || row["branch_name"] != "Gangnam" {
		t.Errorf("row = %v", row)
	}
	if _, ok := row["address"]; ok {
		t.Error("address is not a list column but was projected")
	}
	if row["id"] != r.ID.String() {
		t.Errorf("id = %v, want %s", row["id"], r.ID)
	}
}

func TestProjectReviewContentPartial(t *testing.T) {
	m := Default().Get(Reviews)
	rv := &models.Review{
		ID:             uuid.New(),
		RestaurantName: "Bon Steak",
		Author:         "kim",
		Rating:         5,
		Content:        "The steak was perfectly cooked and the sides were great.",
	}

	row, err := m.Project(rv)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if got := row["content_partial"]; got != "The steak was perfec" {
		t.Errorf("content_partial = %q", got)
	}
	if row["restaurant_name"] != "Bon Steak" {
		t.Errorf("restaurant_name = %v", row["restaurant_name"])
	}
}

func TestProjectStrColumn(t *testing.T) {
	m := Default().Get(Regions)
	row, err := m.Project(&models.Region{
		ID: uuid.New(), Province: "서울", District: "강남구", Neighborhood: "역삼동",
	})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if row[StrColumn] != "서울 강남구 역삼동" {
		t.Errorf("%s = %v", StrColumn, row[StrColumn])
	}
}

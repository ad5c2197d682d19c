// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"github.com/rubms01/ai-restaurant/internal/models"
)

// Registry names, also used as URL segments under /admin.
const (
	Articles             = "articles"
	Tags                 = "tags"
	Restaurants          = "restaurants"
	RestaurantCategories = "restaurant-categories"
	Reviews              = "reviews"
	SocialChannels       = "social-channels"
	CuisineTypes         = "cuisine-types"
	Regions              = "regions"
)

// ActionMakePublished flips the selected articles to published.
const ActionMakePublished = "make_published"

// Default returns the registry of every entity the admin console manages.
func Default() *Registry {
	r := NewRegistry()
	for _, m := range defaultModels() {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

func defaultModels() []*ModelAdmin {
	return []*ModelAdmin{
		{
			Name:              Articles,
			Table:             "articles",
			VerboseName:       "아티클",
			VerboseNamePlural: "아티클 목록",
			ListDisplay:       []string{"id", "title", "show_at_index", "is_published", "created_at", "modified_at"},
			Fields:            []string{"title", "preview_image", "content", "show_at_index", "is_published"},
			SearchFields:      []string{"title"},
			ListFilter:        []string{"show_at_index", "is_published"},
			DateHierarchy:     "created_at",
			Actions: []Action{
				{Name: ActionMakePublished, Description: "선택한 컬럼을 공개상태로 변경합니다."},
			},
		},
		{
			Name:              Tags,
			Table:             "tags",
			VerboseName:       "태그",
			VerboseNamePlural: "태그 목록",
			ListDisplay:       []string{"id", "name"},
			Fields:            []string{"name"},
			SearchFields:      []string{"name"},
		},
		{
			Name:              Restaurants,
			Table:             "restaurants",
			VerboseName:       "레스토랑",
			VerboseNamePlural: "레스토랑 목록",
			ListDisplay:       []string{"id", "name", "branch_name", "is_closed", "phone", "rating", "rating_count"},
			Fields: []string{
				"name", "branch_name", "category_id", "region_id", "is_closed", "phone",
				"address", "description", "feature", "latitude", "longitude",
				"start_time", "end_time", "last_order_time", "tag_ids",
			},
			ReadonlyFields:     []string{"rating", "rating_count"},
			SearchFields:       []string{"name", "branch_name"},
			ListFilter:         []string{"tags", "is_closed", "category", "region"},
			AutocompleteFields: []string{"tag_ids"},
			Inlines: []Inline{
				{Name: "menus", Model: "restaurant_menus", Extra: 1},
				{Name: "images", Model: "restaurant_images", Extra: 1},
			},
		},
		{
			Name:              RestaurantCategories,
			Table:             "restaurant_categories",
			VerboseName:       "레스토랑 카테고리",
			VerboseNamePlural: "레스토랑 카테고리 목록",
			ListDisplay:       []string{"name", "cuisine_type_name"},
			Fields:            []string{"cuisine_type_id", "name"},
			SearchFields:      []string{"name"},
			ListFilter:        []string{"cuisine_type"},
		},
		{
			Name:              Reviews,
			Table:             "reviews",
			VerboseName:       "리뷰",
			VerboseNamePlural: "리뷰 목록",
			ListDisplay:       []string{"id", "restaurant_name", "author", "rating", "content_partial"},
			Fields:            []string{"restaurant_id", "title", "author", "profile_image", "content", "rating", "social_channel_id"},
			SearchFields:      []string{"title", "author", "restaurant_name"},
			ListFilter:        []string{"restaurant", "social_channel"},
			DateHierarchy:     "created_at",
			Inlines: []Inline{
				{Name: "images", Model: "review_images", Extra: 1},
			},
			Computed: map[string]func(any) any{
				"content_partial": reviewContentPartial,
			},
		},
		{
			Name:              SocialChannels,
			Table:             "social_channels",
			VerboseName:       "소셜 채널",
			VerboseNamePlural: "소셜 채널 목록",
			ListDisplay:       []string{"id", "name"},
			Fields:            []string{"name"},
			SearchFields:      []string{"name"},
		},
		{
			Name:              CuisineTypes,
			Table:             "cuisine_types",
			VerboseName:       "음식 종류",
			VerboseNamePlural: "음식 종류 목록",
			ListDisplay:       []string{"id", "name"},
			Fields:            []string{"name"},
			SearchFields:      []string{"name"},
		},
		{
			Name:              Regions,
			Table:             "regions",
			VerboseName:       "지역",
			VerboseNamePlural: "지역 목록",
			ListDisplay:       []string{"id", StrColumn},
			Fields:            []string{"province", "district", "neighborhood"},
			SearchFields:      []string{"province", "district", "neighborhood"},
			Ordering:          []string{"province", "district", "neighborhood"},
		},
	}
}

func reviewContentPartial(obj any) any {
	switch rv := obj.(type) {
	case *models.Review:
		return rv.ContentPartial()
	case models.Review:
		return rv.ContentPartial()
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL persistence layer with one
// store per entity and explicit SQL.
package store

import "database/sql"

// Stores bundles every store sharing one connection pool.
type Stores struct {
	Articles             *ArticleStore
	Restaurants          *RestaurantStore
	RestaurantImages     *RestaurantImageStore
	RestaurantMenus      *RestaurantMenuStore
	Reviews              *ReviewStore
	ReviewImages         *ReviewImageStore
	CuisineTypes         *CuisineTypeStore
	RestaurantCategories *RestaurantCategoryStore
	Tags                 *TagStore
	SocialChannels       *SocialChannelStore
	Regions              *RegionStore
	Deletion             *DeletionStore
	CacheLog             *CacheLogStore
}

// New creates all stores over db.
func New(db *sql.DB) *Stores {
	return &Stores{
		Articles:             NewArticleStore(db),
		Restaurants:          NewRestaurantStore(db),
		RestaurantImages:     NewRestaurantImageStore(db),
		RestaurantMenus:      NewRestaurantMenuStore(db),
		Reviews:              NewReviewStore(db),
		ReviewImages:         NewReviewImageStore(db),
		CuisineTypes:         NewCuisineTypeStore(db),
		RestaurantCategories: NewRestaurantCategoryStore(db),
		Tags:                 NewTagStore(db),
		SocialChannels:       NewSocialChannelStore(db),
		Regions:              NewRegionStore(db),
		Deletion:             NewDeletionStore(db),
		CacheLog:             NewCacheLogStore(db),
	}
}

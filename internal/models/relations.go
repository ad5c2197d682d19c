// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// OnDelete is what happens to a child row when its parent is deleted.
type OnDelete string

const (
	// Cascade: the child is owned by the parent and deleted with it.
	Cascade OnDelete = "CASCADE"
	// SetNull: the child only references the parent; the reference is cleared.
	SetNull OnDelete = "SET NULL"
)

// Relation is one foreign key: Table.Column references Parent.id.
type Relation struct {
	Table    string
	Column   string
	Parent   string
	OnDelete OnDelete
}

// Relations lists every foreign key in the schema with its delete policy.
// The migrations must agree with this list.
var Relations = []Relation{
	{Table: "restaurant_categories", Column: "cuisine_type_id", Parent: "cuisine_types", OnDelete: Cascade},
	{Table: "restaurants", Column: "category_id", Parent: "restaurant_categories", OnDelete: SetNull},
	{Table: "restaurants", Column: "region_id", Parent: "regions", OnDelete: SetNull},
	{Table: "restaurant_tags", Column: "restaurant_id", Parent: "restaurants", OnDelete: Cascade},
	{Table: "restaurant_tags", Column: "tag_id", Parent: "tags", OnDelete: Cascade},
	{Table: "restaurant_images", Column: "restaurant_id", Parent: "restaurants", OnDelete: Cascade},
	{Table: "restaurant_menus", Column: "restaurant_id", Parent: "restaurants", OnDelete: Cascade},
	{Table: "reviews", Column: "restaurant_id", Parent: "restaurants", OnDelete: Cascade},
	{Table: "reviews", Column: "social_channel_id", Parent: "social_channels", OnDelete: SetNull},
	{Table: "review_images", Column: "review_id", Parent: "reviews", OnDelete: Cascade},
}

// ChildrenOf returns the relations whose parent is table.
func ChildrenOf(table string) []Relation {
	var out []Relation
	for _, r := range Relations {
		if r.Parent == table {
			out = append(out, r)
		}
	}
	return out
}

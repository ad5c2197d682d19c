package store

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/validation"
)

var testSpec = listSpec{
	from:   "articles",
	search: []string{"title", "content"},
	filters: map[string]filterDef{
		"is_published": {clause: "is_published = %s", kind: filterBool},
		"category":     {clause: "category_id = %s", kind: filterUUID},
	},
	dateColumn:   "created_at",
	orderable:    map[string]string{"title": "title"},
	defaultOrder: "created_at DESC",
}

func TestListSpecBuild(t *testing.T) {
	lq, err := testSpec.build("id, title", ListParams{
		Search:  "steak  gangnam",
		Filters: map[string]string{"is_published": "true"},
		Year:    2026,
		Month:   3,
		Order:   "-title",
		Limit:   20,
		Offset:  40,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantQuery := "SELECT id, title FROM articles WHERE (title ILIKE $1 OR content ILIKE $1) AND " +
		"(title ILIKE $2 OR content ILIKE $2) AND is_published = $3 AND " +
		"EXTRACT(YEAR FROM created_at) = $4 AND EXTRACT(MONTH FROM created_at) = $5 " +
		"ORDER BY title DESC LIMIT $6 OFFSET $7"
	if lq.query != wantQuery {
		t.Errorf("query:\n got %s\nwant %s", lq.query, wantQuery)
	}
	if !strings.HasPrefix(lq.count, "SELECT COUNT(*) FROM articles WHERE ") {
		t.Errorf("count query = %s", lq.count)
	}
	if len(lq.args) != 7 {
		t.Fatalf("args = %v, want 7 values", lq.args)
	}
	if len(lq.countArgs) != 5 {
		t.Errorf("countArgs = %v, want 5 values", lq.countArgs)
	}
	if lq.args[0] != "%steak%" || lq.args[1] != "%gangnam%" {
		t.Errorf("search args = %v %v", lq.args[0], lq.args[1])
	}
	if lq.args[5] != 20 || lq.args[6] != 40 {
		t.Errorf("limit/offset = %v/%v, want 20/40", lq.args[5], lq.args[6])
	}
}

func TestListSpecBuildDefaults(t *testing.T) {
	lq, err := testSpec.build("id", ListParams{Limit: 10000, Offset: -5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "SELECT id FROM articles ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	if lq.query != want {
		t.Errorf("query = %s, want %s", lq.query, want)
	}
	if lq.args[0] != MaxLimit || lq.args[1] != 0 {
		t.Errorf("limit/offset = %v/%v, want %d/0", lq.args[0], lq.args[1], MaxLimit)
	}

	lq, _ = testSpec.build("id", ListParams{})
	if lq.args[0] != DefaultLimit {
		t.Errorf("default limit = %v, want %d", lq.args[0], DefaultLimit)
	}
}

func TestListSpecBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		p     ListParams
		field string
	}{
		{"unknown filter", ListParams{Filters: map[string]string{"color": "red"}}, "color"},
		{"bad bool", ListParams{Filters: map[string]string{"is_published": "maybe"}}, "is_published"},
		{"bad uuid", ListParams{Filters: map[string]string{"category": "42"}}, "category"},
		{"month without year", ListParams{Month: 4}, "month"},
		{"month out of range", ListParams{Year: 2026, Month: 13}, "month"},
		{"not orderable", ListParams{Order: "content"}, "o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSpec.build("id", tt.p)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("build() = %v, want *validation.Error", err)
			}
			if verr.Fields[0].Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Fields[0].Field, tt.field)
			}
		})
	}
}

func TestListSpecNoDateColumn(t *testing.T) {
	spec := listSpec{from: "tags", defaultOrder: "name"}
	if _, err := spec.build("id", ListParams{Year: 2026}); err == nil {
		t.Error("expected an error for year on an entity without date hierarchy")
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListSpecsMatchRegistry(t *testing.T) {
	specs := map[string]listSpec{
		admin.Articles:             articleList,
		admin.Tags:                 tagList,
		admin.Restaurants:          restaurantList,
		admin.RestaurantCategories: categoryList,
		admin.Reviews:              reviewList,
		admin.SocialChannels:       socialChannelList,
		admin.CuisineTypes:         cuisineTypeList,
		admin.Regions:              regionList,
	}

	for _, m := range admin.Default().All() {
		t.Run(m.Name, func(t *testing.T) {
			spec, ok := specs[m.Name]
			if !ok {
				t.Fatalf("no list spec for %q", m.Name)
			}
			if len(spec.search) != len(m.SearchFields) {
				t.Errorf("store searches %v, registry advertises %v", spec.search, m.SearchFields)
			}
			var filters []string
			for k := range spec.filters {
				filters = append(filters, k)
			}
			slices.Sort(filters)
			want := slices.Clone(m.ListFilter)
			slices.Sort(want)
			if !slices.Equal(filters, want) {
				t.Errorf("store filters %v, registry advertises %v", filters, want)
			}
			if (spec.dateColumn != "") != (m.DateHierarchy != "") {
				t.Errorf("store date column %q, registry date hierarchy %q", spec.dateColumn, m.DateHierarchy)
			}
		})
	}
}

package catalog_test

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locally/internal/domains/space/catalog"
	"locally/internal/domains/space/model"
)

func intPtr(v int) *int {
	return &v
}

func pricePtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)

	return &d
}

// listing is ordered newest first, as the store returns it.
func listing() []model.Space {
	return []model.Space{
		{ID: "s1", Title: "Estudio Fotográfico", Location: "Ciudad de México, CDMX", PricePerHour: decimal.RequireFromString("450"), Capacity: 15, SpaceType: model.TypeStudio},
		{ID: "s2", Title: "Sala de Juntas", Location: "Monterrey, NL", PricePerHour: decimal.RequireFromString("320"), Capacity: 20, SpaceType: model.TypeMeetingRoom},
		{ID: "s3", Title: "Eventos Privados", Location: "Guadalajara, JAL", PricePerHour: decimal.RequireFromString("680"), Capacity: 50, SpaceType: model.TypeEventHall},
		{ID: "s4", Title: "Coworking Creativo", Location: "Puebla, PUE", PricePerHour: decimal.RequireFromString("180"), Capacity: 12, SpaceType: model.TypeCoworking},
		{ID: "s5", Title: "Oficina Centro", Location: "MÉXICO, Polanco", PricePerHour: decimal.RequireFromString("320.50"), Capacity: 8, SpaceType: model.TypeOffice},
	}
}

func ids(spaces []model.Space) []string {
	res := make([]string, len(spaces))
	for i, s := range spaces {
		res[i] = s.ID
	}

	return res
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{
			name:   "location is a case-insensitive substring",
			filter: catalog.Filter{Location: "méxico"},
			want:   []string{"s1", "s5"},
		},
		{
			name:   "min capacity is inclusive",
			filter: catalog.Filter{MinCapacity: intPtr(15)},
			want:   []string{"s1", "s2", "s3"},
		},
		{
			name:   "max price is inclusive",
			filter: catalog.Filter{MaxPrice: pricePtr("320")},
			want:   []string{"s2", "s4"},
		},
		{
			name:   "type is exact",
			filter: catalog.Filter{Type: model.TypeCoworking},
			want:   []string{"s4"},
		},
		{
			name:   "criteria are conjunctive",
			filter: catalog.Filter{MinCapacity: intPtr(10), MaxPrice: pricePtr("450")},
			want:   []string{"s1", "s2", "s4"},
		},
		{
			name:   "all criteria at once",
			filter: catalog.Filter{Location: "m", MinCapacity: intPtr(10), MaxPrice: pricePtr("450"), Type: model.TypeMeetingRoom},
			want:   []string{"s2"},
		},
		{
			name:   "max price below every space is an empty result",
			filter: catalog.Filter{MaxPrice: pricePtr("1")},
			want:   []string{},
		},
		{
			name:   "unknown type is an empty result",
			filter: catalog.Filter{Type: "Estudio"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Search(listing(), tt.filter)

			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearchIdentity(t *testing.T) {
	all := listing()

	assert.Equal(t, all, catalog.Search(all, catalog.Filter{}))
	assert.True(t, catalog.Filter{}.IsZero())
}

func TestSearchIdempotent(t *testing.T) {
	filters := []catalog.Filter{
		{Location: "mé"},
		{MinCapacity: intPtr(12), Type: model.TypeCoworking},
		{MaxPrice: pricePtr("500"), MinCapacity: intPtr(9)},
	}

	for _, f := range filters {
		once := catalog.Search(listing(), f)

		assert.Equal(t, once, catalog.Search(once, f))
	}
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	all := listing()

	_ = catalog.Search(all, catalog.Filter{MaxPrice: pricePtr("200")})

	assert.Equal(t, listing(), all)
}

func TestSearchEmptyInput(t *testing.T) {
	got := catalog.Search(nil, catalog.Filter{Location: "x"})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterMatch(t *testing.T) {
	space := listing()[0]

	assert.True(t, catalog.Filter{Location: "CDMX", Type: model.TypeStudio}.Match(space))
	assert.False(t, catalog.Filter{MinCapacity: intPtr(16)}.Match(space))
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		assert func(t *testing.T, f catalog.Filter)
	}{
		{
			name:  "empty query sets nothing",
			query: "",
			assert: func(t *testing.T, f catalog.Filter) {
				assert.True(t, f.IsZero())
			},
		},
		{
			name:  "blank values set nothing",
			query: "location=%20%20&min_capacity=&max_price=%20&type=",
			assert: func(t *testing.T, f catalog.Filter) {
				assert.True(t, f.IsZero())
			},
		},
		{
			name:  "numbers are parsed",
			query: "location=%20Monterrey%20&min_capacity=10&max_price=320.50&type=oficina",
			assert: func(t *testing.T, f catalog.Filter) {
				assert.Equal(t, "Monterrey", f.Location)
				require.NotNil(t, f.MinCapacity)
				assert.Equal(t, 10, *f.MinCapacity)
				require.NotNil(t, f.MaxPrice)
				assert.True(t, decimal.RequireFromString("320.5").Equal(*f.MaxPrice))
				assert.Equal(t, model.TypeOffice, f.Type)
			},
		},
		{
			name:  "non-numeric capacity and price are ignored",
			query: "min_capacity=ten&max_price=cheap&location=Puebla",
			assert: func(t *testing.T, f catalog.Filter) {
				assert.Nil(t, f.MinCapacity)
				assert.Nil(t, f.MaxPrice)
				assert.Equal(t, "Puebla", f.Location)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			tt.assert(t, catalog.ParseFilter(values))
		})
	}
}

func TestParsedFilterSearch(t *testing.T) {
	values := url.Values{catalog.ParamMaxPrice: {"abc"}, catalog.ParamMinCapacity: {"20"}}

	assert.Equal(t, []string{"s2", "s3"}, ids(catalog.Search(listing(), catalog.ParseFilter(values))))
}

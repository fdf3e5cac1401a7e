// Package catalog filters the active space listing.
//
// Search is pure: it keeps the order of its input, never mutates it and applies every set
// criterion conjunctively. An unset criterion matches everything, so a zero Filter returns the
// input unchanged and applying the same Filter twice equals applying it once.
package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"locally/internal/domains/space/model"
	"locally/shared/constant"
)

const (
	ParamLocation    = "location"
	ParamMinCapacity = "min_capacity"
	ParamMaxPrice    = "max_price"
	ParamType        = "type"
)

// Filter holds the optional search criteria. Nil pointers and blank strings are unset.
type Filter struct {
	Location    string
	MinCapacity *int
	MaxPrice    *decimal.Decimal
	Type        string
}

func (f Filter) IsZero() bool {
	return f.Location == constant.Empty && f.MinCapacity == nil && f.MaxPrice == nil && f.Type == constant.Empty
}

// ParseFilter reads the criteria from query values. Blank values stay unset and so do
// capacity or price values that are not numbers.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Location: strings.TrimSpace(values.Get(ParamLocation)),
		Type:     strings.TrimSpace(values.Get(ParamType)),
	}

	if raw := strings.TrimSpace(values.Get(ParamMinCapacity)); raw != constant.Empty {
		if capacity, err := strconv.Atoi(raw); err == nil {
			f.MinCapacity = &capacity
		}
	}

	if raw := strings.TrimSpace(values.Get(ParamMaxPrice)); raw != constant.Empty {
		if price, err := decimal.NewFromString(raw); err == nil {
			f.MaxPrice = &price
		}
	}

	return f
}

// Search returns the spaces of all that satisfy f, in their original order.
func Search(all []model.Space, f Filter) []model.Space {
	m := newMatcher(f)

	res := make([]model.Space, 0, len(all))
	for _, space := range all {
		if m.match(space) {
			res = append(res, space)
		}
	}

	return res
}

// Match reports whether space satisfies f.
func (f Filter) Match(space model.Space) bool {
	return newMatcher(f).match(space)
}

type matcher struct {
	filter   Filter
	fold     cases.Caser
	location string
}

// newMatcher folds the location once per search. A Caser keeps state, so it is never shared.
func newMatcher(f Filter) *matcher {
	m := &matcher{filter: f, fold: cases.Fold()}
	if f.Location != constant.Empty {
		m.location = m.fold.String(f.Location)
	}

	return m
}

func (m *matcher) match(space model.Space) bool {
	if m.location != constant.Empty && !strings.Contains(m.fold.String(space.Location), m.location) {
		return false
	}

	if m.filter.MinCapacity != nil && space.Capacity < *m.filter.MinCapacity {
		return false
	}

	if m.filter.MaxPrice != nil && space.PricePerHour.GreaterThan(*m.filter.MaxPrice) {
		return false
	}

	if m.filter.Type != constant.Empty && space.SpaceType != m.filter.Type {
		return false
	}

	return true
}

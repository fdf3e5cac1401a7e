package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"locally/shared"
	"locally/shared/cache/mocks"
	"locally/shared/constant"
	"locally/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	truthy, falsy := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &truthy},
		{input: "1", expected: &truthy},
		{input: "F", expected: &falsy},
		{input: "false", expected: &falsy},
		{input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "empty", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 100, limit: 0, expected: 1},
		{name: "exact", total: 100, limit: 10, expected: 10},
		{name: "remainder", total: 101, limit: 10, expected: 11},
		{name: "single page", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type statusUpdate struct {
		Status  string `db:"status"`
		Note    string `db:"note"`
		Ignored string
	}

	result := shared.TransformFields(statusUpdate{Status: "inactive", Ignored: "x"}, "owner-1")

	assert.Equal(t, "inactive", result["status"])
	assert.NotContains(t, result, "note")
	assert.NotContains(t, result, "Ignored")
	assert.Equal(t, "owner-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("space-1", "id", "spaces")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(spaces.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "space-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "role:get", shared.BuildCacheKey("role:get"))
	assert.Equal(t, "role:get:user-1", shared.BuildCacheKey("role:get", "user-1"))
	assert.Equal(t, "booking:owner:user-1:p2", shared.BuildCacheKey("booking:owner", "user-1", "p2"))
}

func TestBuildCacheKeyWithQueryIsStable(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.And(
		dto.Eq("spaces", "status", "active"),
		dto.Eq("spaces", "owner_id", "owner-1"),
	)

	first := shared.BuildCacheKeyWithQuery("space:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("space:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("space:gets", params, dto.And(dto.Eq("spaces", "owner_id", "owner-2")))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "space:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), "space:active*").Return(nil)
	shared.InvalidateCaches(context.Background(), cache, "space:active")

	cache.EXPECT().Clear(gomock.Any(), "role:get*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), cache, "role:get")
}

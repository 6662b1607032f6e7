package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToConcreteSlice(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
	}{
		{
			name:   "TestToConcreteSlice_Strings",
			values: []any{"a", "b"},
			want:   []string{"a", "b"},
		},
		{
			name:   "TestToConcreteSlice_Int64",
			values: []any{int64(1), int64(2)},
			want:   []int64{1, 2},
		},
		{
			name:   "TestToConcreteSlice_Mixed",
			values: []any{"a", int64(1)},
			want:   []any{"a", int64(1)},
		},
		{
			name:   "TestToConcreteSlice_NilElementZeroed",
			values: []any{"a", nil},
			want:   []string{"a", ""},
		},
		{
			name:   "TestToConcreteSlice_AllNil",
			values: []any{nil, nil},
			want:   []any{nil, nil},
		},
		{
			name:   "TestToConcreteSlice_Empty",
			values: []any{},
			want:   []any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toConcreteSlice(tt.values))
		})
	}
}

package entities

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want core.Entities
	}{
		{
			name: "nil mapping",
			raw:  nil,
			want: core.Entities{Constraints: []string{}},
		},
		{
			name: "router example",
			raw: map[string]any{
				"where": " Prague ", "when": "November", "days": float64(4),
				"budget": "$1200", "party": nil, "origin": "Tel Aviv", "constraints": []any{},
			},
			want: core.Entities{
				Where: "Prague", When: "November", Days: 4, Budget: "$1200",
				Origin: "Tel Aviv", Constraints: []string{},
			},
		},
		{
			name: "blank strings are absent",
			raw:  map[string]any{"where": "   ", "party": "", "budget": "\t"},
			want: core.Entities{Constraints: []string{}},
		},
		{
			name: "month aliases",
			raw:  map[string]any{"when": "Sept."},
			want: core.Entities{When: "September", Constraints: []string{}},
		},
		{
			name: "free text when kept",
			raw:  map[string]any{"when": " mid-September to early October "},
			want: core.Entities{When: "mid-September to early October", Constraints: []string{}},
		},
		{
			name: "constraints trimmed and filtered",
			raw:  map[string]any{"constraints": []any{" beach ", "", nil, "avoid crowds", float64(2), true}},
			want: core.Entities{Constraints: []string{"beach", "avoid crowds", "2", "true"}},
		},
		{
			name: "constraints not an array",
			raw:  map[string]any{"constraints": "beach"},
			want: core.Entities{Constraints: []string{}},
		},
		{
			name: "numeric budget",
			raw:  map[string]any{"budget": float64(1500)},
			want: core.Entities{Budget: "1500", Constraints: []string{}},
		},
		{
			name: "region kept",
			raw:  map[string]any{"region": "Balkans"},
			want: core.Entities{Region: "Balkans", Constraints: []string{}},
		},
		{
			name: "non scalar where",
			raw:  map[string]any{"where": map[string]any{"city": "Rome"}},
			want: core.Entities{Constraints: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_Days(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "string", in: "5", want: 5},
		{name: "padded string", in: " 7 ", want: 7},
		{name: "json number", in: float64(3), want: 3},
		{name: "fractional truncates", in: 5.7, want: 5},
		{name: "int", in: 10, want: 10},
		{name: "garbage", in: "abc", want: 0},
		{name: "negative", in: float64(-3), want: 0},
		{name: "negative string", in: "-3", want: 0},
		{name: "zero", in: 0, want: 0},
		{name: "fraction below one", in: 0.5, want: 0},
		{name: "null", in: nil, want: 0},
		{name: "bool", in: true, want: 0},
		{name: "decimal string", in: "5.5", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"days": tt.in})
			assert.Equal(t, tt.want, got.Days)
		})
	}

	assert.Equal(t, 0, Normalize(map[string]any{}).Days, "missing key")
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"where":" Tokyo ","when":"apr","days":"6","constraints":["food"," "]}`,
		`{"where":null,"when":"October","days":null,"budget":null,"party":null,"origin":null,"constraints":["warm","beach","avoid crowds"]}`,
		`{"when":"late summer","days":-2,"party":"family with kids","constraints":"x"}`,
		`{"budget":900,"origin":"  Haifa","region":"Balkans","days":2.9}`,
	}

	for _, in := range inputs {
		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(in), &raw))

		once := Normalize(raw)
		twice := Normalize(once.Raw())
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("not idempotent for %s (-once +twice):\n%s", in, diff)
		}
	}
}

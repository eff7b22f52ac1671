package completion

import (
	"testing"

	"github.com/sadopc/gotermsql/internal/dialect"
)

func TestBuildMask(t *testing.T) {
	dlt := dialect.For("postgres")

	cases := []struct {
		name              string
		prefix            string
		searchInsideNames bool
		want              string
	}{
		{"empty prefix, scoped search", "", false, "%"},
		{"empty prefix, search inside names", "", true, "%"},
		{"plain prefix", "use", false, "use%"},
		{"plain prefix, search inside names", "use", true, "%use%"},
		{"quoted prefix unquoted", `"use`, false, "use%"},
		{"qualified prefix takes last segment", "public.use", false, "use%"},
		{"qualified, search inside names", "public.use", true, "%use%"},
		{"trailing separator", "public.", false, "%"},
		{"trailing separator, search inside names", "public.", true, "%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildMask(tc.prefix, dlt, tc.searchInsideNames)
			if got != tc.want {
				t.Errorf("BuildMask(%q, _, %v) = %q, want %q", tc.prefix, tc.searchInsideNames, got, tc.want)
			}
		})
	}
}

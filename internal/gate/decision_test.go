package gate

import (
	"testing"

	"github.com/foodhubhq/storefront-gateway/pkg/types"
)

func session(role types.Role) *types.Session {
	return &types.Session{UserID: "user-1", Role: role}
}

func TestDecideAdminRoutes(t *testing.T) {
	cases := []struct {
		name     string
		session  *types.Session
		expected Decision
	}{
		{"unauthenticated", nil, RedirectTo("/login")},
		{"customer", session(types.RoleCustomer), RedirectTo("/")},
		{"provider", session(types.RoleProvider), RedirectTo("/provider/dashboard")},
		{"admin", session(types.RoleAdmin), Allow()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.session, "/admin/dashboard")
			if got != tc.expected {
				t.Fatalf("expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestDecideProviderRoutes(t *testing.T) {
	if got := Decide(nil, "/provider/menu"); got != RedirectTo("/login") {
		t.Fatalf("unauthenticated should bounce to login, got %+v", got)
	}
	if got := Decide(session(types.RoleCustomer), "/provider/menu"); got != RedirectTo("/") {
		t.Fatalf("customer should bounce home, got %+v", got)
	}
	if got := Decide(session(types.RoleProvider), "/provider/menu"); !got.Allowed() {
		t.Fatalf("provider should pass, got %+v", got)
	}
	if got := Decide(session(types.RoleAdmin), "/provider/menu"); !got.Allowed() {
		t.Fatalf("admin should pass, got %+v", got)
	}
}

func TestDecideCustomerRoutes(t *testing.T) {
	for _, path := range []string{"/orders", "/orders/abc", "/checkout", "/profile"} {
		if got := Decide(nil, path); got != RedirectTo("/login") {
			t.Fatalf("unauthenticated %s should bounce to login, got %+v", path, got)
		}
		for _, role := range []types.Role{types.RoleCustomer, types.RoleProvider, types.RoleAdmin} {
			if got := Decide(session(role), path); !got.Allowed() {
				t.Fatalf("%s should pass on %s, got %+v", role, path, got)
			}
		}
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	s := session(types.RoleProvider)
	first := Decide(s, "/admin/users")
	second := Decide(s, "/admin/users")
	if first != second {
		t.Fatalf("same input should yield same decision: %+v vs %+v", first, second)
	}
}

func TestGatedPrefixBoundaries(t *testing.T) {
	if !Gated(DefaultPrefixes, "/admin") {
		t.Fatal("/admin itself should be gated")
	}
	if !Gated(DefaultPrefixes, "/orders/o-1") {
		t.Fatal("/orders subpaths should be gated")
	}
	if Gated(DefaultPrefixes, "/administration") {
		t.Fatal("prefix match must respect segment boundaries")
	}
	if Gated(DefaultPrefixes, "/cart") {
		t.Fatal("/cart must stay outside the gate")
	}
	if Gated(DefaultPrefixes, "/meals") {
		t.Fatal("public browsing must stay outside the gate")
	}
}

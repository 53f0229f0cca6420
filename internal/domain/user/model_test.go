package user

import "testing"

func TestPrincipal_IsAdmin(t *testing.T) {
	t.Parallel()

	if (Principal{Roles: []string{"viewer"}}).IsAdmin() {
		t.Fatalf("viewer must not be admin")
	}
	if !(Principal{Roles: []string{"viewer", " Admin "}}).IsAdmin() {
		t.Fatalf("expected case-insensitive admin role match")
	}
}

func TestPrincipal_Name(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Principal
		want string
	}{
		{in: Principal{UserID: "u1", DisplayName: "Rina"}, want: "Rina"},
		{in: Principal{UserID: "u1", Email: "rina@example.com"}, want: "rina"},
		{in: Principal{UserID: "u1"}, want: "u1"},
	}
	for _, tc := range cases {
		if got := tc.in.Name(); got != tc.want {
			t.Fatalf("unexpected name: got=%s want=%s", got, tc.want)
		}
	}
}

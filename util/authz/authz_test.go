package authz

import "testing"

func TestAllowed(t *testing.T) {
	owner := Principal{ID: 1}
	staff := Principal{ID: 9, Staff: true}
	other := Principal{ID: 2}

	cases := []struct {
		name   string
		p      Principal
		owner  int64
		action Action
		want   bool
	}{
		{"owner decides", owner, 1, DecideRequest, true},
		{"staff decides", staff, 1, DecideRequest, true},
		{"stranger cannot decide", other, 1, DecideRequest, false},
		{"owner lists requests", owner, 1, ViewRequests, true},
		{"staff moderates", staff, 0, ModerateAdvert, true},
		{"owner cannot moderate", owner, 1, ModerateAdvert, false},
		{"renter cancels own order", other, 2, CancelOrder, true},
		{"staff cannot cancel someone's order", staff, 2, CancelOrder, false},
		{"staff cannot cancel someone's request", staff, 2, CancelRequest, false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.p, tc.owner, tc.action); got != tc.want {
			t.Errorf("%s: Allowed = %v, want %v", tc.name, got, tc.want)
		}
	}
}

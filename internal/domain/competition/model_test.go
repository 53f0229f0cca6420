package competition

import (
	"testing"
	"time"
)

func TestCompetitionValidate(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		item    Competition
		wantErr bool
	}{
		{name: "valid football", item: Competition{ID: "epl-2025", Name: "Premier League", Sport: "Football"}},
		{name: "valid rugby", item: Competition{ID: "six-nations", Name: "Six Nations", Sport: SportRugby}},
		{name: "missing id", item: Competition{Name: "x", Sport: SportFootball}, wantErr: true},
		{name: "unknown sport", item: Competition{ID: "c", Name: "x", Sport: "cricket"}, wantErr: true},
		{name: "end before start", item: Competition{ID: "c", Name: "x", Sport: SportFootball, StartsAt: start, EndsAt: start.Add(-time.Hour)}, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.item.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: got=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestCompetitionSyncable(t *testing.T) {
	t.Parallel()

	if (Competition{IsActive: true}).Syncable() {
		t.Fatalf("competition without provider code should not be syncable")
	}
	if !(Competition{IsActive: true, ProviderCode: "PL"}).Syncable() {
		t.Fatalf("active competition with provider code should be syncable")
	}
	if (Competition{IsActive: false, ProviderCode: "PL"}).Syncable() {
		t.Fatalf("inactive competition should not be syncable")
	}
}

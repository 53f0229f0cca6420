package team

import (
	"reflect"
	"testing"
)

func TestTeamValidate(t *testing.T) {
	t.Parallel()

	valid := Team{ID: "t-ars", Name: "Arsenal", Sport: "football"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := []Team{
		{Name: "Arsenal", Sport: "football"},
		{ID: "t1", Sport: "football"},
		{ID: "t1", Name: "Arsenal", Sport: "hockey"},
		{ID: "t1", Name: "Arsenal", Sport: "football", ProviderTeamID: -1},
	}
	for i, item := range invalid {
		if err := item.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestCleanAliases(t *testing.T) {
	t.Parallel()

	got := CleanAliases([]string{" Gunners ", "", "gunners", "The Arsenal"})
	want := []string{"Gunners", "The Arsenal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected aliases: got=%v want=%v", got, want)
	}
}

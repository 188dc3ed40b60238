package rank

import (
	"testing"

	"jobwatch/internal/domain"
)

func TestMatchOrgFirstMatchWins(t *testing.T) {
	dir := []domain.TargetOrg{
		{Name: "Foo GmbH", MatchTerms: []string{"foo"}},
		{Name: "Foobar AG", MatchTerms: []string{"foobar"}},
	}
	// "foo" shadows "foobar": directory order decides.
	got := MatchOrg(dir, "Foobar AG")
	if got == nil || got.Name != "Foo GmbH" {
		t.Errorf("got %v, want Foo GmbH (earlier entry shadows)", got)
	}
}

func TestMatchOrgCaseInsensitive(t *testing.T) {
	dir := []domain.TargetOrg{
		{Name: "NETZSCH-Gerätebau", MatchTerms: []string{"netzsch"}, Priority: "high"},
	}
	got := MatchOrg(dir, "NETZSCH-Gerätebau GmbH")
	if got == nil || got.Name != "NETZSCH-Gerätebau" {
		t.Fatalf("got %v", got)
	}
	if !got.HighPriority() {
		t.Error("priority flag lost")
	}
}

func TestMatchOrgNoHit(t *testing.T) {
	dir := []domain.TargetOrg{{Name: "Linseis", MatchTerms: []string{"linseis"}}}
	if got := MatchOrg(dir, "Mustermann GmbH"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if got := MatchOrg(dir, "   "); got != nil {
		t.Errorf("blank company: got %v, want nil", got)
	}
}

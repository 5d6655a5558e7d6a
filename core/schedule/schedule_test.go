// Package schedule - weekly table tests
package schedule

import (
	"testing"

	"github.com/shopspring/decimal"

	"paperbill/internal/errors"
)

func TestParseDeliveryDays(t *testing.T) {
	days, err := ParseDeliveryDays("YNYYNNY")
	if err != nil {
		t.Fatal(err)
	}
	want := [7]bool{true, false, true, true, false, false, true}
	if days != want {
		t.Errorf("ParseDeliveryDays(\"YNYYNNY\") = %v, want %v", days, want)
	}
}

func TestParseDeliveryDaysRejects(t *testing.T) {
	for _, s := range []string{"", "YNY", "YNYYNNYY", "ynyynny", "YNYYNNX", "Y N Y Y N N Y"} {
		if _, err := ParseDeliveryDays(s); err == nil {
			t.Errorf("ParseDeliveryDays(%q) should fail", s)
		} else if !errors.IsType(err, errors.TypeInput) {
			t.Errorf("ParseDeliveryDays(%q): expected input error, got %v", s, err)
		}
	}
}

func TestBuild(t *testing.T) {
	delivered := [7]bool{true, false, true, false, false, false, true}
	prices := []decimal.Decimal{
		decimal.NewFromInt(2),
		decimal.RequireFromString("3.50"),
		decimal.NewFromInt(5),
	}

	sched, err := Build(delivered, prices)
	if err != nil {
		t.Fatal(err)
	}

	if !sched[0].Delivered || !sched[0].Price.Equal(decimal.NewFromInt(2)) {
		t.Errorf("monday entry = %+v", sched[0])
	}
	if sched[1].Delivered || !sched[1].Price.IsZero() {
		t.Errorf("tuesday entry = %+v, want undelivered with zero price", sched[1])
	}
	if !sched[2].Price.Equal(decimal.RequireFromString("3.50")) {
		t.Errorf("wednesday price = %s, want 3.50", sched[2].Price)
	}
	if !sched[6].Delivered || !sched[6].Price.Equal(decimal.NewFromInt(5)) {
		t.Errorf("sunday entry = %+v", sched[6])
	}

	if got := sched.DeliveredCount(); got != 3 {
		t.Errorf("DeliveredCount = %d, want 3", got)
	}
}

func TestBuildPriceCountMismatch(t *testing.T) {
	delivered := [7]bool{true, true, false, false, false, false, false}
	_, err := Build(delivered, []decimal.Decimal{decimal.NewFromInt(2)})
	if err == nil {
		t.Fatal("expected error for too few prices")
	}
	_, err = Build(delivered, []decimal.Decimal{
		decimal.NewFromInt(2), decimal.NewFromInt(2), decimal.NewFromInt(2),
	})
	if err == nil {
		t.Fatal("expected error for too many prices")
	}
}

func TestBuildRejectsNegativePrice(t *testing.T) {
	delivered := [7]bool{true, false, false, false, false, false, false}
	_, err := Build(delivered, []decimal.Decimal{decimal.NewFromInt(-1)})
	if err == nil {
		t.Fatal("expected error for negative price")
	}
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

package services

import (
	"testing"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
)

func euros(v float64) *float64 { return &v }

func TestResolvePriceNoSale(t *testing.T) {
	tour := &models.Tour{Price: 200, PriceEUR: euros(180)}

	en := ResolvePrice(tour, "en")
	if en.Amount != 200 || en.Currency != "USD" || en.Symbol != "$" {
		t.Fatalf("expected $200 USD, got %+v", en)
	}

	de := ResolvePrice(tour, "de")
	if de.Amount != 180 || de.Currency != "EUR" || de.Symbol != "€" {
		t.Fatalf("expected €180 EUR, got %+v", de)
	}
}

func TestResolvePriceDiscount(t *testing.T) {
	tour := &models.Tour{Price: 200, PriceEUR: euros(180), OnSale: true, Discount: 25}

	en := ResolvePrice(tour, "en")
	if en.Amount != 150 || en.Symbol != "$" {
		t.Fatalf("expected $150, got %+v", en)
	}

	de := ResolvePrice(tour, "de")
	if de.Amount != 135 || de.Symbol != "€" {
		t.Fatalf("expected €135, got %+v", de)
	}
}

func TestResolvePriceRounding(t *testing.T) {
	// 99 with 33% off = 66.33 -> 66; 10% off 95 = 85.5 -> 86 (half-up)
	tour := &models.Tour{Price: 99, OnSale: true, Discount: 33}
	if got := ResolvePrice(tour, "en").Amount; got != 66 {
		t.Fatalf("expected 66, got %d", got)
	}

	tour = &models.Tour{Price: 95, OnSale: true, Discount: 10}
	if got := ResolvePrice(tour, "en").Amount; got != 86 {
		t.Fatalf("expected 86, got %d", got)
	}
}

func TestResolvePriceEURFallback(t *testing.T) {
	// German locale without a EUR price falls back to USD.
	tour := &models.Tour{Price: 120}
	de := ResolvePrice(tour, "de")
	if de.Amount != 120 || de.Currency != "USD" || de.Symbol != "$" {
		t.Fatalf("expected USD fallback, got %+v", de)
	}

	// A zero EUR price counts as unset.
	tour = &models.Tour{Price: 120, PriceEUR: euros(0)}
	if got := ResolvePrice(tour, "de"); got.Currency != "USD" {
		t.Fatalf("expected USD for zero EUR price, got %+v", got)
	}
}

func TestResolvePriceDiscountIgnoredWhenNotOnSale(t *testing.T) {
	tour := &models.Tour{Price: 200, Discount: 50}
	if got := ResolvePrice(tour, "en").Amount; got != 200 {
		t.Fatalf("discount should not apply off-sale, got %d", got)
	}
}

func TestLocalizedField(t *testing.T) {
	if got := LocalizedField("en", "", true); got != "en" {
		t.Fatalf("empty German should fall back, got %q", got)
	}
	if got := LocalizedField("en", "de", true); got != "de" {
		t.Fatalf("expected German variant, got %q", got)
	}
	if got := LocalizedField("en", "de", false); got != "en" {
		t.Fatalf("expected English variant, got %q", got)
	}
}

func TestBookingTotal(t *testing.T) {
	tour := &models.Tour{Price: 200, OnSale: true, Discount: 25} // per adult 150

	total, quote := BookingTotal(tour, "en", 2, 1, 0)
	if total != 375 {
		t.Fatalf("expected 375, got %v", total)
	}
	if quote.Amount != 150 || quote.Currency != "USD" {
		t.Fatalf("unexpected quote %+v", quote)
	}

	// Infants pay a quarter: 2*150 + 1*75 + 2*38 (37.5 rounded up) = 451
	total, _ = BookingTotal(tour, "en", 2, 1, 2)
	if total != 451 {
		t.Fatalf("expected 451, got %v", total)
	}
}

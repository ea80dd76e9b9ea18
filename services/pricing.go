package services

import (
	"math"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
)

// PriceQuote is the displayed price of a tour for one locale.
type PriceQuote struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
}

// ResolvePrice picks the base price for the locale and applies the sale
// discount. German visitors get the EUR price when one is set, otherwise
// they fall back to USD like everyone else.
func ResolvePrice(tour *models.Tour, locale string) PriceQuote {
	base := tour.Price
	currency, symbol := "USD", "$"
	if locale == "de" && tour.PriceEUR != nil && *tour.PriceEUR > 0 {
		base = *tour.PriceEUR
		currency, symbol = "EUR", "€"
	}

	amount := base
	if tour.OnSale && tour.Discount > 0 {
		amount = base - base*float64(tour.Discount)/100
	}

	return PriceQuote{
		Amount:   int(math.Round(amount)),
		Currency: currency,
		Symbol:   symbol,
	}
}

// LocalizedField returns the German variant when requested and present.
func LocalizedField(en, de string, german bool) string {
	if german && de != "" {
		return de
	}
	return en
}

// BookingTotal computes the booking price server-side from the tour's
// resolved per-adult price: children pay 50%, infants 25%.
func BookingTotal(tour *models.Tour, locale string, adults, children, infants int) (float64, PriceQuote) {
	quote := ResolvePrice(tour, locale)

	perAdult := float64(quote.Amount)
	perChild := math.Round(perAdult * 0.5)
	perInfant := math.Round(perAdult * 0.25)

	total := float64(adults)*perAdult + float64(children)*perChild + float64(infants)*perInfant
	return total, quote
}

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeGiftCards(t *testing.T) {
	summary := SummarizeGiftCards(SampleCatalogAt(fixedNow).GiftCards)

	assert.Equal(t, 500.0, summary.TotalSold)
	assert.Equal(t, 175.0, summary.ActiveBalance)
	assert.Equal(t, 1, summary.RedeemedCount)
	assert.Equal(t, 2, summary.ActiveCount)
	assert.Equal(t, 1, summary.ExpiredCount)
	assert.InDelta(t, 35, summary.UnredeemedPercent, 1e-9)
	assert.Zero(t, SummarizeGiftCards(nil).UnredeemedPercent)
}

func TestIssueGiftCard(t *testing.T) {
	issued := time.Date(2026, time.February, 3, 12, 0, 0, 0, time.UTC)
	card := IssueGiftCard("g1", "wxyz", GiftCardInput{Amount: 120, RecipientName: "Ana"}, issued)

	assert.Equal(t, "GIFT-2026-WXYZ", card.Code)
	assert.Equal(t, 120.0, card.Balance)
	assert.Equal(t, "2026-02-03", card.PurchaseDate)
	assert.Equal(t, "2027-02-03", card.ExpiryDate)
	assert.Equal(t, GiftCardActive, card.Status)
}

package analytics

import (
	"fmt"
	"strings"
	"time"
)

// GiftCardSummary is the gift card page header.
type GiftCardSummary struct {
	TotalSold         float64 `json:"totalSold"`
	ActiveBalance     float64 `json:"activeBalance"`
	RedeemedCount     int     `json:"redeemedCount"`
	ActiveCount       int     `json:"activeCount"`
	ExpiredCount      int     `json:"expiredCount"`
	UnredeemedPercent float64 `json:"unredeemedPercent"`
}

// SummarizeGiftCards totals sold value and outstanding balances. The
// unredeemed percentage is 0 when nothing has been sold.
func SummarizeGiftCards(cards []GiftCard) GiftCardSummary {
	var summary GiftCardSummary
	for _, card := range cards {
		summary.TotalSold += card.Amount
		switch card.Status {
		case GiftCardActive:
			summary.ActiveCount++
			summary.ActiveBalance += card.Balance
		case GiftCardRedeemed:
			summary.RedeemedCount++
		case GiftCardExpired:
			summary.ExpiredCount++
		}
	}
	if summary.TotalSold > 0 {
		summary.UnredeemedPercent = summary.ActiveBalance / summary.TotalSold * 100
	}
	return summary
}

// GiftCardInput describes a card to issue.
type GiftCardInput struct {
	Amount         float64 `json:"amount"`
	RecipientName  string  `json:"recipientName"`
	RecipientEmail string  `json:"recipientEmail,omitempty"`
	PurchasedBy    string  `json:"purchasedBy,omitempty"`
}

// IssueGiftCard builds an active card valid for one year from issuedAt.
// suffix is the random part of the code and is upper cased.
func IssueGiftCard(id, suffix string, input GiftCardInput, issuedAt time.Time) GiftCard {
	return GiftCard{
		ID:             id,
		Code:           fmt.Sprintf("GIFT-%d-%s", issuedAt.Year(), strings.ToUpper(suffix)),
		Amount:         input.Amount,
		Balance:        input.Amount,
		RecipientName:  input.RecipientName,
		RecipientEmail: input.RecipientEmail,
		PurchasedBy:    input.PurchasedBy,
		PurchaseDate:   issuedAt.Format(time.DateOnly),
		ExpiryDate:     issuedAt.AddDate(1, 0, 0).Format(time.DateOnly),
		Status:         GiftCardActive,
	}
}

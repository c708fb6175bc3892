package models

// UserWallet tracks one user's token balance and cumulative turnover.
// Balance has no lower bound and may go negative.
type UserWallet struct {
	ID          string
	UserID      string
	Balance     float64
	TotalEarned float64
	TotalSpent  float64
}

package settings

import "github.com/fourfold/fourfold/pkg/money"

// Settings is the single user profile of the application. InitialSavings
// seeds the cumulative savings projection.
type Settings struct {
	InitialSavings money.Cents
	Currency       string
}

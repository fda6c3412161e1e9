package model

import "time"

// RiskProfile is the named risk appetite a user selects at registration.
// The set is fixed; unknown values are rejected at the validation boundary.
type RiskProfile string

const (
	RiskProfileConservative RiskProfile = "conservative"
	RiskProfileModerate     RiskProfile = "moderate"
	RiskProfileAggressive   RiskProfile = "aggressive"
)

// Valid reports whether the profile is one of the known values.
func (p RiskProfile) Valid() bool {
	switch p {
	case RiskProfileConservative, RiskProfileModerate, RiskProfileAggressive:
		return true
	}
	return false
}

// User represents a registered user from the database.
// PasswordHash is a bcrypt hash and never leaves the repository/service layer.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	RiskProfile  RiskProfile `json:"riskProfile"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// RiskProfileTarget is the static target asset mix for a risk profile.
// This is configuration reference data, not user data.
type RiskProfileTarget struct {
	Stocks      float64 `json:"stocks"`
	Bonds       float64 `json:"bonds"`
	Cash        float64 `json:"cash"`
	Description string  `json:"description"`
}

package model

import "time"

// Profile holds the editable account details for a user.
type Profile struct {
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Plan     string          `json:"plan,omitempty"`
	Payments []PaymentRecord `json:"payments,omitempty"`
}

// PaymentRecord is one entry in the mock payment ledger.
type PaymentRecord struct {
	PaidAt time.Time `json:"paidAt"`
	ID     string    `json:"id"`
	Plan   string    `json:"plan"`
	Coupon string    `json:"coupon,omitempty"`
	Amount float64   `json:"amount"`
}

// Plan is one of the mock subscription tiers.
type Plan struct {
	Name     string
	Features []string
	Price    float64
	Popular  bool
}

// Plans lists the mock subscription tiers in display order.
var Plans = []Plan{
	{
		Name:  "FREE",
		Price: 0,
		Features: []string{
			"Single mandate filings",
			"30-day filing history",
			"Community support",
		},
	},
	{
		Name:    "PRO",
		Price:   149.99,
		Popular: true,
		Features: []string{
			"All mandates",
			"Unlimited filing history",
			"File sharing",
			"Priority processing",
			"Email support",
		},
	},
	{
		Name:  "PREMIUM",
		Price: 249.99,
		Features: []string{
			"All mandates",
			"Unlimited filing history",
			"File sharing",
			"Priority processing",
			"Sheets export",
			"Dedicated support",
		},
	},
}

// PlanByName returns the named plan, or nil when unknown. Matching is
// exact on the uppercase tier name.
func PlanByName(name string) *Plan {
	for i := range Plans {
		if Plans[i].Name == name {
			return &Plans[i]
		}
	}
	return nil
}

// DefaultProfile returns the initial profile for a user, seeded from the
// login variant's identity. The OAuth identities carry their own display
// address, distinct from the login email that keys the partitions.
func DefaultProfile(u User) Profile {
	p := Profile{
		FullName: u.DisplayName(),
		Email:    u.Email(),
		Phone:    "123-456-7890",
		Plan:     "FREE",
	}
	switch u.Method() {
	case LoginGoogle:
		p.Email = "notebookchick@gmail.com"
	case LoginOutlook:
		p.Email = "john.smith@outlook.com"
	}
	return p
}

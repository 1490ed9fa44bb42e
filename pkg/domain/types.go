package domain

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// User is an operator account. Accounts are created at bootstrap and
// never mutated or deleted afterwards.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Party is a customer the workshop bills. Immutable after creation.
type Party struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
}

// Item is a billable glass type with a per-square-meter rate.
// Rate changes are not retroactive: job cards snapshot their total.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	RatePerSqmt float64   `json:"ratePerSqmt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobCard is an immutable billing record for one job. TotalAmount is
// the GST-inclusive total computed once at creation.
type JobCard struct {
	ID          int64     `json:"id"`
	PartyID     int64     `json:"partyId"`
	ItemID      int64     `json:"itemId"`
	Length      float64   `json:"length"`
	Width       float64   `json:"width"`
	Holes       int       `json:"holes"`
	BigHoles    int       `json:"bigHoles"`
	AddCharges  float64   `json:"addCharges"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

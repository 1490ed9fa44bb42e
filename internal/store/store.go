// Package store defines persistence for workshop records and sessions.
package store

import "glassworks/pkg/domain"

// Store defines persistence operations for users, parties, items and job
// cards. Identifiers are assigned by the store on creation and increase
// monotonically per record type. Business records are never updated or
// deleted once created.
type Store interface {
	// users
	CreateUser(u domain.User) (domain.User, error)
	GetUserByUsername(username string) (domain.User, bool, error)
	GetUserByID(id int64) (domain.User, bool, error)
	UserCount() (int, error)

	// parties
	CreateParty(p domain.Party) (domain.Party, error)
	GetParty(id int64) (domain.Party, bool, error)
	ListParties() ([]domain.Party, error)

	// items
	CreateItem(i domain.Item) (domain.Item, error)
	GetItem(id int64) (domain.Item, bool, error)
	ListItems() ([]domain.Item, error)

	// job cards; ListJobCards returns newest first
	CreateJobCard(jc domain.JobCard) (domain.JobCard, error)
	GetJobCard(id int64) (domain.JobCard, bool, error)
	ListJobCards() ([]domain.JobCard, error)
	ListJobCardsByParty(partyID int64) ([]domain.JobCard, error)
	ListJobCardsByItem(itemID int64) ([]domain.JobCard, error)
}

// SessionStore persists session tokens.
type SessionStore interface {
	NewSession(userID int64) (string, error)
	GetUserIDByToken(token string) (int64, bool, error)
	DeleteSession(token string) error
}

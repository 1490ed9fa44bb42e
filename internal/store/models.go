package store

import (
	"time"

	"glassworks/pkg/domain"
)

// GORM models used for persistence.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type PartyModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null"`
	Contact   string
	CreatedAt time.Time `gorm:"not null"`
}

type ItemModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null"`
	RatePerSqmt float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type JobCardModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PartyID     int64     `gorm:"not null;index"`
	ItemID      int64     `gorm:"not null;index"`
	Length      float64   `gorm:"not null"`
	Width       float64   `gorm:"not null"`
	Holes       int       `gorm:"not null"`
	BigHoles    int       `gorm:"not null"`
	AddCharges  float64   `gorm:"not null"`
	TotalAmount float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func partyToModel(p domain.Party) PartyModel {
	return PartyModel{
		ID:        p.ID,
		Name:      p.Name,
		Contact:   p.Contact,
		CreatedAt: p.CreatedAt,
	}
}

func partyFromModel(m PartyModel) domain.Party {
	return domain.Party{
		ID:        m.ID,
		Name:      m.Name,
		Contact:   m.Contact,
		CreatedAt: m.CreatedAt,
	}
}

func itemToModel(i domain.Item) ItemModel {
	return ItemModel{
		ID:          i.ID,
		Name:        i.Name,
		RatePerSqmt: i.RatePerSqmt,
		CreatedAt:   i.CreatedAt,
	}
}

func itemFromModel(m ItemModel) domain.Item {
	return domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		RatePerSqmt: m.RatePerSqmt,
		CreatedAt:   m.CreatedAt,
	}
}

func jobCardToModel(jc domain.JobCard) JobCardModel {
	return JobCardModel{
		ID:          jc.ID,
		PartyID:     jc.PartyID,
		ItemID:      jc.ItemID,
		Length:      jc.Length,
		Width:       jc.Width,
		Holes:       jc.Holes,
		BigHoles:    jc.BigHoles,
		AddCharges:  jc.AddCharges,
		TotalAmount: jc.TotalAmount,
		CreatedAt:   jc.CreatedAt,
	}
}

func jobCardFromModel(m JobCardModel) domain.JobCard {
	return domain.JobCard{
		ID:          m.ID,
		PartyID:     m.PartyID,
		ItemID:      m.ItemID,
		Length:      m.Length,
		Width:       m.Width,
		Holes:       m.Holes,
		BigHoles:    m.BigHoles,
		AddCharges:  m.AddCharges,
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt,
	}
}

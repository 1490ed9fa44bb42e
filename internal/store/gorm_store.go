package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"glassworks/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &PartyModel{}, &ItemModel{}, &JobCardModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateUser inserts a user and returns it with the assigned ID.
func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	model.ID = 0
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

// GetUserByUsername looks up a user by exact username.
func (s *GormStore) GetUserByUsername(username string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id int64) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// UserCount returns number of users.
func (s *GormStore) UserCount() (int, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// CreateParty inserts a party and returns it with the assigned ID.
func (s *GormStore) CreateParty(p domain.Party) (domain.Party, error) {
	model := partyToModel(p)
	model.ID = 0
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Party{}, err
	}
	return partyFromModel(model), nil
}

// GetParty returns a party by ID.
func (s *GormStore) GetParty(id int64) (domain.Party, bool, error) {
	var model PartyModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Party{}, false, nil
		}
		return domain.Party{}, false, err
	}
	return partyFromModel(model), true, nil
}

// ListParties returns all parties in insertion order.
func (s *GormStore) ListParties() ([]domain.Party, error) {
	var models []PartyModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Party, 0, len(models))
	for _, m := range models {
		res = append(res, partyFromModel(m))
	}
	return res, nil
}

// CreateItem inserts an item and returns it with the assigned ID.
func (s *GormStore) CreateItem(i domain.Item) (domain.Item, error) {
	model := itemToModel(i)
	model.ID = 0
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Item{}, err
	}
	return itemFromModel(model), nil
}

// GetItem returns an item by ID.
func (s *GormStore) GetItem(id int64) (domain.Item, bool, error) {
	var model ItemModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Item{}, false, nil
		}
		return domain.Item{}, false, err
	}
	return itemFromModel(model), true, nil
}

// ListItems returns all items in insertion order.
func (s *GormStore) ListItems() ([]domain.Item, error) {
	var models []ItemModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Item, 0, len(models))
	for _, m := range models {
		res = append(res, itemFromModel(m))
	}
	return res, nil
}

// CreateJobCard inserts a job card and returns it with the assigned ID.
func (s *GormStore) CreateJobCard(jc domain.JobCard) (domain.JobCard, error) {
	model := jobCardToModel(jc)
	model.ID = 0
	if err := s.db.Create(&model).Error; err != nil {
		return domain.JobCard{}, err
	}
	return jobCardFromModel(model), nil
}

// GetJobCard returns a job card by ID.
func (s *GormStore) GetJobCard(id int64) (domain.JobCard, bool, error) {
	var model JobCardModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.JobCard{}, false, nil
		}
		return domain.JobCard{}, false, err
	}
	return jobCardFromModel(model), true, nil
}

// ListJobCards returns all job cards, newest first.
func (s *GormStore) ListJobCards() ([]domain.JobCard, error) {
	return s.listJobCards()
}

// ListJobCardsByParty returns a party's job cards, newest first.
func (s *GormStore) ListJobCardsByParty(partyID int64) ([]domain.JobCard, error) {
	return s.listJobCards("party_id = ?", partyID)
}

// ListJobCardsByItem returns an item's job cards, newest first.
func (s *GormStore) ListJobCardsByItem(itemID int64) ([]domain.JobCard, error) {
	return s.listJobCards("item_id = ?", itemID)
}

func (s *GormStore) listJobCards(conds ...any) ([]domain.JobCard, error) {
	var models []JobCardModel
	tx := s.db.Order("id DESC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.JobCard, 0, len(models))
	for _, m := range models {
		res = append(res, jobCardFromModel(m))
	}
	return res, nil
}

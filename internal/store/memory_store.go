package store

import (
	"sync"

	"glassworks/pkg/domain"
)

// MemoryStore keeps records in-process. It backs dev mode and tests when
// no database is configured.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[int64]domain.User
	byName   map[string]int64 // username -> user ID
	parties  map[int64]domain.Party
	items    map[int64]domain.Item
	jobCards map[int64]domain.JobCard

	userSeq    int64
	partySeq   int64
	itemSeq    int64
	jobCardSeq int64
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]domain.User),
		byName:   make(map[string]int64),
		parties:  make(map[int64]domain.Party),
		items:    make(map[int64]domain.Item),
		jobCards: make(map[int64]domain.JobCard),
	}
}

// CreateUser assigns the next user ID and stores the record.
func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userSeq++
	u.ID = m.userSeq
	m.users[u.ID] = u
	m.byName[u.Username] = u.ID
	return u, nil
}

// GetUserByUsername looks up a user by exact username.
func (m *MemoryStore) GetUserByUsername(username string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.byName[username]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id int64) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// UserCount returns number of users.
func (m *MemoryStore) UserCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// CreateParty assigns the next party ID and stores the record.
func (m *MemoryStore) CreateParty(p domain.Party) (domain.Party, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partySeq++
	p.ID = m.partySeq
	m.parties[p.ID] = p
	return p, nil
}

// GetParty returns a party by ID.
func (m *MemoryStore) GetParty(id int64) (domain.Party, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parties[id]
	return p, ok, nil
}

// ListParties returns parties in insertion order.
func (m *MemoryStore) ListParties() ([]domain.Party, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Party, 0, len(m.parties))
	for id := int64(1); id <= m.partySeq; id++ {
		if p, ok := m.parties[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

// CreateItem assigns the next item ID and stores the record.
func (m *MemoryStore) CreateItem(i domain.Item) (domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itemSeq++
	i.ID = m.itemSeq
	m.items[i.ID] = i
	return i, nil
}

// GetItem returns an item by ID.
func (m *MemoryStore) GetItem(id int64) (domain.Item, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.items[id]
	return i, ok, nil
}

// ListItems returns items in insertion order.
func (m *MemoryStore) ListItems() ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Item, 0, len(m.items))
	for id := int64(1); id <= m.itemSeq; id++ {
		if i, ok := m.items[id]; ok {
			res = append(res, i)
		}
	}
	return res, nil
}

// CreateJobCard assigns the next job card ID and stores the record.
func (m *MemoryStore) CreateJobCard(jc domain.JobCard) (domain.JobCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobCardSeq++
	jc.ID = m.jobCardSeq
	m.jobCards[jc.ID] = jc
	return jc, nil
}

// GetJobCard returns a job card by ID.
func (m *MemoryStore) GetJobCard(id int64) (domain.JobCard, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jc, ok := m.jobCards[id]
	return jc, ok, nil
}

// ListJobCards returns job cards newest first.
func (m *MemoryStore) ListJobCards() ([]domain.JobCard, error) {
	return m.listJobCards(func(domain.JobCard) bool { return true })
}

// ListJobCardsByParty returns a party's job cards, newest first.
func (m *MemoryStore) ListJobCardsByParty(partyID int64) ([]domain.JobCard, error) {
	return m.listJobCards(func(jc domain.JobCard) bool { return jc.PartyID == partyID })
}

// ListJobCardsByItem returns an item's job cards, newest first.
func (m *MemoryStore) ListJobCardsByItem(itemID int64) ([]domain.JobCard, error) {
	return m.listJobCards(func(jc domain.JobCard) bool { return jc.ItemID == itemID })
}

func (m *MemoryStore) listJobCards(keep func(domain.JobCard) bool) ([]domain.JobCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.JobCard, 0, len(m.jobCards))
	for id := m.jobCardSeq; id >= 1; id-- {
		if jc, ok := m.jobCards[id]; ok && keep(jc) {
			res = append(res, jc)
		}
	}
	return res, nil
}

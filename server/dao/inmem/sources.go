package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/google/uuid"
)

func NewSourcesRepository() *InMemorySourcesRepository {
	return &InMemorySourcesRepository{
		sources:      make(map[uuid.UUID]dao.Source),
		byOwnerIndex: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

type InMemorySourcesRepository struct {
	mtx          sync.RWMutex
	sources      map[uuid.UUID]dao.Source
	byOwnerIndex map[uuid.UUID]map[uuid.UUID]bool
}

func (imsr *InMemorySourcesRepository) Close() error {
	return nil
}

func (imsr *InMemorySourcesRepository) Create(ctx context.Context, src dao.Source) (dao.Source, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Source{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	src.ID = newUUID
	src.Created = time.Now()
	src.Tokens = copyBytes(src.Tokens)

	imsr.sources[src.ID] = src

	owned, ok := imsr.byOwnerIndex[src.OwnerID]
	if !ok {
		owned = make(map[uuid.UUID]bool)
		imsr.byOwnerIndex[src.OwnerID] = owned
	}
	owned[src.ID] = true

	return src, nil
}

func (imsr *InMemorySourcesRepository) GetAll(ctx context.Context) ([]dao.Source, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	all := make([]dao.Source, 0, len(imsr.sources))
	for k := range imsr.sources {
		all = append(all, imsr.sources[k])
	}
	sortSources(all)

	return all, nil
}

func (imsr *InMemorySourcesRepository) GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Source, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	owned := imsr.byOwnerIndex[owner]
	all := make([]dao.Source, 0, len(owned))
	for id := range owned {
		all = append(all, imsr.sources[id])
	}
	sortSources(all)

	return all, nil
}

func (imsr *InMemorySourcesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Source, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	src, ok := imsr.sources[id]
	if !ok {
		return dao.Source{}, dao.ErrNotFound
	}

	return src, nil
}

func (imsr *InMemorySourcesRepository) SetTokens(ctx context.Context, id uuid.UUID, tokens []byte) (dao.Source, error) {
	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	src, ok := imsr.sources[id]
	if !ok {
		return dao.Source{}, dao.ErrNotFound
	}

	src.Tokens = copyBytes(tokens)
	imsr.sources[id] = src

	return src, nil
}

func (imsr *InMemorySourcesRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Source, error) {
	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	src, ok := imsr.sources[id]
	if !ok {
		return dao.Source{}, dao.ErrNotFound
	}

	delete(imsr.sources, id)
	if owned, ok := imsr.byOwnerIndex[src.OwnerID]; ok {
		delete(owned, id)
		if len(owned) == 0 {
			delete(imsr.byOwnerIndex, src.OwnerID)
		}
	}

	return src, nil
}

// sortSources orders sources oldest first, breaking ties by ID.
func sortSources(all []dao.Source) {
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Created.Equal(all[j].Created) {
			return all[i].Created.Before(all[j].Created)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// Package inmem provides a dao.Store that keeps everything in memory. All data
// is lost when the process exits.
package inmem

import (
	"fmt"

	"github.com/dekarrin/ecp/server/dao"
)

type store struct {
	users   *InMemoryUsersRepository
	sources *InMemorySourcesRepository
}

// NewDatastore creates an empty in-memory dao.Store.
func NewDatastore() dao.Store {
	return &store{
		users:   NewUsersRepository(),
		sources: NewSourcesRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Sources() dao.SourceRepository {
	return s.sources
}

func (s *store) Close() error {
	var err error

	if nextErr := s.users.Close(); nextErr != nil {
		err = fmt.Errorf("users: %w", nextErr)
	}
	if nextErr := s.sources.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, sources: %w", err, nextErr)
		} else {
			err = fmt.Errorf("sources: %w", nextErr)
		}
	}

	return err
}

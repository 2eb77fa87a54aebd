// Package lexsvc has services for interacting with the ecp server backend
// decoupled from the API that accesses it.
package lexsvc

import (
	"errors"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/serr"
	"github.com/google/uuid"
)

// DefaultPasswordCost is the bcrypt cost used when Service.PasswordCost is
// not set.
const DefaultPasswordCost = 14

// Service performs the actions requested of the ecp server backend and makes
// calls to server persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// Keywords is the set of reserved words used when tokenizing. If nil,
	// lex.DefaultKeywords is used.
	Keywords lex.KeywordSet

	// PasswordCost is the bcrypt cost of stored password hashes. If zero,
	// DefaultPasswordCost is used.
	PasswordCost int
}

// ActiveKeywords returns the reserved words the service tokenizes with.
func (svc Service) ActiveKeywords() lex.KeywordSet {
	if svc.Keywords == nil {
		return lex.DefaultKeywords()
	}
	return svc.Keywords
}

func (svc Service) passwordCost() int {
	if svc.PasswordCost == 0 {
		return DefaultPasswordCost
	}
	return svc.PasswordCost
}

// parseID parses the ID of an entity given by a caller.
func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, serr.New("ID is not valid", serr.ErrBadArgument)
	}
	return u, nil
}

// daoErr converts err from a repository call that was doing action into a
// service error. A missing entity becomes serr.ErrNotFound; anything else is
// a DB problem.
func daoErr(action string, err error) error {
	if errors.Is(err, dao.ErrNotFound) {
		return serr.ErrNotFound
	}
	return serr.WrapDB("could not "+action, err)
}

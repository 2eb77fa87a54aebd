package lexsvc

import (
	"context"
	"errors"
	"net/mail"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/serr"
)

// GetAllUsers returns every user in persistence.
func (svc Service) GetAllUsers(ctx context.Context) ([]dao.User, error) {
	users, err := svc.DB.Users().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("could not list users", err)
	}
	return users, nil
}

// GetUser returns the user with the given ID. The error matches
// serr.ErrBadArgument for a malformed ID and serr.ErrNotFound for an unknown
// one.
func (svc Service) GetUser(ctx context.Context, id string) (dao.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return dao.User{}, err
	}

	user, err := svc.DB.Users().GetByID(ctx, uid)
	if err != nil {
		return dao.User{}, daoErr("get user", err)
	}
	return user, nil
}

// CreateUser adds a user with the given credentials and role. email may be
// empty. The password is stored only as a bcrypt hash.
//
// The error matches serr.ErrBadArgument if username or password is blank or
// email does not parse, and serr.ErrAlreadyExists if the username is taken.
func (svc Service) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	if username == "" {
		return dao.User{}, serr.New("username cannot be blank", serr.ErrBadArgument)
	}
	if password == "" {
		return dao.User{}, serr.New("password cannot be blank", serr.ErrBadArgument)
	}

	user := dao.User{Username: username, Role: role}
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return dao.User{}, serr.New("email is not valid", err, serr.ErrBadArgument)
		}
		user.Email = addr
	}

	hash, err := svc.hashPassword(password)
	if err != nil {
		return dao.User{}, err
	}
	user.Password = hash

	// the username is UNIQUE in every store, so a duplicate surfaces here
	created, err := svc.DB.Users().Create(ctx, user)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.User{}, serr.New("a user with that username already exists", serr.ErrAlreadyExists)
		}
		return dao.User{}, serr.WrapDB("could not create user", err)
	}
	return created, nil
}

// DeleteUser deletes the user with the given ID and every source they own,
// returning the user as it was. Errors match as for GetUser.
func (svc Service) DeleteUser(ctx context.Context, id string) (dao.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return dao.User{}, err
	}

	// not every store cascades, so owned sources go first
	owned, err := svc.DB.Sources().GetAllByOwner(ctx, uid)
	if err != nil {
		return dao.User{}, serr.WrapDB("could not get user's sources", err)
	}
	for _, src := range owned {
		if _, err := svc.DB.Sources().Delete(ctx, src.ID); err != nil && !errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.WrapDB("could not delete user's sources", err)
		}
	}

	user, err := svc.DB.Users().Delete(ctx, uid)
	if err != nil {
		return dao.User{}, daoErr("delete user", err)
	}
	return user, nil
}

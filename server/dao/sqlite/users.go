package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/google/uuid"
)

// UsersDB is the dao.UserRepository of a SQLite store.
type UsersDB struct {
	db *sql.DB
}

const selectUsers = `SELECT id, username, password, role, email, created, modified, last_logout_time, last_login_time FROM users`

func scanUser(row rowScanner) (dao.User, error) {
	var u dao.User
	var id, role, email string
	var created, modified, logout, login int64

	if err := row.Scan(&id, &u.Username, &u.Password, &role, &email, &created, &modified, &logout, &login); err != nil {
		return dao.User{}, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &u.ID); err != nil {
		return u, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_Email(email, &u.Email); err != nil {
		return u, fmt.Errorf("stored email %q is invalid: %w", email, err)
	}
	if err := convertFromDB_Role(role, &u.Role); err != nil {
		return u, fmt.Errorf("stored role %q is invalid: %w", role, err)
	}
	convertFromDB_Time(created, &u.Created)
	convertFromDB_Time(modified, &u.Modified)
	convertFromDB_Time(logout, &u.LastLogoutTime)
	convertFromDB_Time(login, &u.LastLoginTime)

	return u, nil
}

// Create inserts user under a new random ID. Created, Modified, and
// LastLogoutTime are set to now; LastLoginTime starts unset.
func (repo *UsersDB) Create(ctx context.Context, user dao.User) (dao.User, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}
	now := convertToDB_Time(time.Now())

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, role, email, created, modified, last_logout_time, last_login_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0);`,
		convertToDB_UUID(id), user.Username, user.Password, convertToDB_Role(user.Role), convertToDB_Email(user.Email), now, now, now,
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, id)
}

func (repo *UsersDB) GetAll(ctx context.Context) ([]dao.User, error) {
	return queryAll(ctx, repo.db, scanUser, selectUsers+` ORDER BY id;`)
}

func (repo *UsersDB) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	return scanUser(repo.db.QueryRowContext(ctx, selectUsers+` WHERE id = ?;`, convertToDB_UUID(id)))
}

func (repo *UsersDB) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	return scanUser(repo.db.QueryRowContext(ctx, selectUsers+` WHERE username = ?;`, username))
}

// Update replaces every stored field of the user with the given ID except its
// ID and Created time. Modified is set to now.
func (repo *UsersDB) Update(ctx context.Context, id uuid.UUID, user dao.User) (dao.User, error) {
	err := execOne(ctx, repo.db,
		`UPDATE users SET username=?, password=?, role=?, email=?, last_logout_time=?, last_login_time=?, modified=? WHERE id=?;`,
		user.Username, user.Password, convertToDB_Role(user.Role), convertToDB_Email(user.Email),
		convertToDB_Time(user.LastLogoutTime), convertToDB_Time(user.LastLoginTime), convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.User{}, err
	}
	return repo.GetByID(ctx, id)
}

// Delete removes the user and, through the foreign key, every source they
// own.
func (repo *UsersDB) Delete(ctx context.Context, id uuid.UUID) (dao.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return user, err
	}
	return user, execOne(ctx, repo.db, `DELETE FROM users WHERE id = ?;`, convertToDB_UUID(id))
}

// Close closes the connection pool of the whole store.
func (repo *UsersDB) Close() error {
	return repo.db.Close()
}

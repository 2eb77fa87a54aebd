package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/google/uuid"
)

// SourcesDB is the dao.SourceRepository of a SQLite store. Cached token data
// is stored base64-encoded alongside the source text.
type SourcesDB struct {
	db *sql.DB
}

const selectSources = `SELECT id, owner_id, name, text, created, tokens FROM sources`

func scanSource(row rowScanner) (dao.Source, error) {
	var src dao.Source
	var id, owner string
	var created int64
	var tokens *string

	if err := row.Scan(&id, &owner, &src.Name, &src.Text, &created, &tokens); err != nil {
		return dao.Source{}, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &src.ID); err != nil {
		return src, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_UUID(owner, &src.OwnerID); err != nil {
		return src, fmt.Errorf("stored owner UUID %q is invalid: %w", owner, err)
	}
	if err := convertFromDB_Tokens(tokens, &src.Tokens); err != nil {
		return src, fmt.Errorf("stored tokens are invalid: %w", err)
	}
	convertFromDB_Time(created, &src.Created)

	return src, nil
}

// Create inserts src under a new random ID. An OwnerID that is not a stored
// user gives dao.ErrConstraintViolation.
func (repo *SourcesDB) Create(ctx context.Context, src dao.Source) (dao.Source, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Source{}, fmt.Errorf("could not generate ID: %w", err)
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO sources (id, owner_id, name, text, created, tokens) VALUES (?, ?, ?, ?, ?, ?);`,
		convertToDB_UUID(id), convertToDB_UUID(src.OwnerID), src.Name, src.Text,
		convertToDB_Time(time.Now()), convertToDB_Tokens(src.Tokens),
	)
	if err != nil {
		return dao.Source{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, id)
}

func (repo *SourcesDB) GetAll(ctx context.Context) ([]dao.Source, error) {
	return queryAll(ctx, repo.db, scanSource, selectSources+` ORDER BY created, id;`)
}

func (repo *SourcesDB) GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Source, error) {
	return queryAll(ctx, repo.db, scanSource, selectSources+` WHERE owner_id = ? ORDER BY created, id;`, convertToDB_UUID(owner))
}

func (repo *SourcesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Source, error) {
	return scanSource(repo.db.QueryRowContext(ctx, selectSources+` WHERE id = ?;`, convertToDB_UUID(id)))
}

func (repo *SourcesDB) SetTokens(ctx context.Context, id uuid.UUID, tokens []byte) (dao.Source, error) {
	err := execOne(ctx, repo.db, `UPDATE sources SET tokens=? WHERE id=?;`, convertToDB_Tokens(tokens), convertToDB_UUID(id))
	if err != nil {
		return dao.Source{}, err
	}
	return repo.GetByID(ctx, id)
}

func (repo *SourcesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Source, error) {
	src, err := repo.GetByID(ctx, id)
	if err != nil {
		return src, err
	}
	return src, execOne(ctx, repo.db, `DELETE FROM sources WHERE id = ?;`, convertToDB_UUID(id))
}

// Close closes the connection pool of the whole store.
func (repo *SourcesDB) Close() error {
	return repo.db.Close()
}

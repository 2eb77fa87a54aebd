package lexsvc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/serr"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// CreateSource stores a new source document owned by the user with the given
// ID. The text is not tokenized until SourceTokens is first called for it.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if the name
// is blank, serr.ErrNotFound if the owner does not exist, and serr.ErrDB for
// unexpected problems with the DB.
func (svc Service) CreateSource(ctx context.Context, owner uuid.UUID, name, text string) (dao.Source, error) {
	if name == "" {
		return dao.Source{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	if _, err := svc.DB.Users().GetByID(ctx, owner); err != nil {
		return dao.Source{}, daoErr("get owner", err)
	}

	src, err := svc.DB.Sources().Create(ctx, dao.Source{
		OwnerID: owner,
		Name:    name,
		Text:    text,
	})
	if err != nil {
		return dao.Source{}, serr.WrapDB("could not create source", err)
	}

	return src, nil
}

// GetSource returns the source with the given ID.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not
// a valid ID, serr.ErrNotFound if no such source exists, and serr.ErrDB for
// unexpected problems with the DB.
func (svc Service) GetSource(ctx context.Context, id string) (dao.Source, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return dao.Source{}, err
	}

	src, err := svc.DB.Sources().GetByID(ctx, uuidID)
	if err != nil {
		return dao.Source{}, daoErr("get source", err)
	}

	return src, nil
}

// GetSources returns every source owned by the user with the given ID, oldest
// first.
func (svc Service) GetSources(ctx context.Context, owner uuid.UUID) ([]dao.Source, error) {
	srcs, err := svc.DB.Sources().GetAllByOwner(ctx, owner)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return srcs, nil
}

// GetAllSources returns every source in persistence, oldest first.
func (svc Service) GetAllSources(ctx context.Context) ([]dao.Source, error) {
	srcs, err := svc.DB.Sources().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return srcs, nil
}

// DeleteSource deletes the source with the given ID, along with its cached
// tokens. It returns the source as it was just before deletion.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not
// a valid ID, serr.ErrNotFound if no such source exists, and serr.ErrDB for
// unexpected problems with the DB.
func (svc Service) DeleteSource(ctx context.Context, id string) (dao.Source, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return dao.Source{}, err
	}

	src, err := svc.DB.Sources().Delete(ctx, uuidID)
	if err != nil {
		return dao.Source{}, daoErr("delete source", err)
	}

	return src, nil
}

// SourceTokens returns the tokens of the given source. The first call for a
// source tokenizes its text and caches the encoded result in persistence;
// later calls decode the cache instead of lexing again. The cache records the
// keywords it was made with, and a cache made with a different keyword set or
// that cannot be decoded is discarded and rebuilt.
//
// If the text cannot be tokenized, the returned error will match serr.ErrLex
// and errors.As will find the *lex.Error describing the problem. Nothing is
// cached in that case.
func (svc Service) SourceTokens(ctx context.Context, src dao.Source) ([]lex.Token, error) {
	keywords := svc.ActiveKeywords()

	if src.Tokens != nil {
		toks, err := decodeTokenCache(src.Tokens, keywords, lex.NewSource(src.Name, src.Text))
		if err == nil {
			return toks, nil
		}
		if errors.Is(err, errStaleCache) {
			log.Printf("INFO  source %s: keywords changed since tokens were cached; re-lexing", src.ID)
		} else {
			log.Printf("WARN  source %s: discarding unreadable token cache: %v", src.ID, err)
		}
	}

	toks, err := svc.Lex(src.Name, src.Text)
	if err != nil {
		return nil, err
	}

	if _, err := svc.DB.Sources().SetTokens(ctx, src.ID, encodeTokenCache(keywords, toks)); err != nil {
		return nil, daoErr("cache tokens", err)
	}

	return toks, nil
}

var errStaleCache = errors.New("token cache was made with other keywords")

// keywordFingerprint gives a string that is equal for two KeywordSets exactly
// when they hold the same words. Keywords cannot contain spaces.
func keywordFingerprint(ks lex.KeywordSet) string {
	return strings.Join(ks.Words(), " ")
}

// encodeTokenCache gives the persisted form of toks: the fingerprint of the
// keywords they were lexed with followed by the encoded tokens.
func encodeTokenCache(ks lex.KeywordSet, toks []lex.Token) []byte {
	data := rezi.EncString(keywordFingerprint(ks))
	return append(data, lex.EncodeTokens(toks)...)
}

// decodeTokenCache decodes data made by encodeTokenCache. If the cache was not
// made with ks, the returned error matches errStaleCache.
func decodeTokenCache(data []byte, ks lex.KeywordSet, src *lex.Source) ([]lex.Token, error) {
	fingerprint, n, err := rezi.DecString(data)
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	if fingerprint != keywordFingerprint(ks) {
		return nil, errStaleCache
	}

	return lex.DecodeTokens(data[n:], src)
}

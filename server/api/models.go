package api

import (
	"time"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/dao"
)

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type UserModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout,omitempty"`
	LastLoginTime  string `json:"last_login,omitempty"`
}

type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Lexer  string `json:"lexer"`
	} `json:"version"`
	Keywords []string `json:"keywords"`
}

type LexRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type LexResponse struct {
	Tokens []TokenModel `json:"tokens"`
}

// LexErrorResponse is the body of an HTTP-422 sent when source text cannot be
// tokenized. Line and column are 1-indexed; offset is a 0-indexed byte offset.
type LexErrorResponse struct {
	Error      string `json:"error"`
	Status     int    `json:"status"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Offset     int    `json:"offset"`
	Diagnostic string `json:"diagnostic"`
}

type PositionModel struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type TokenModel struct {
	Kind   string        `json:"kind"`
	Value  interface{}   `json:"value,omitempty"`
	Lexeme string        `json:"lexeme"`
	Start  PositionModel `json:"start"`
	End    PositionModel `json:"end"`
}

type SourceModel struct {
	URI     string `json:"uri"`
	ID      string `json:"id,omitempty"`
	Owner   string `json:"owner,omitempty"`
	Name    string `json:"name"`
	Text    string `json:"text"`
	Created string `json:"created,omitempty"`
	Lexed   bool   `json:"lexed"`
}

func userModel(u dao.User) UserModel {
	m := UserModel{
		URI:            PathPrefix + "/users/" + u.ID.String(),
		ID:             u.ID.String(),
		Username:       u.Username,
		Role:           u.Role.String(),
		Created:        formatTime(u.Created),
		Modified:       formatTime(u.Modified),
		LastLogoutTime: formatTime(u.LastLogoutTime),
		LastLoginTime:  formatTime(u.LastLoginTime),
	}
	if u.Email != nil {
		m.Email = u.Email.Address
	}
	return m
}

func sourceModel(src dao.Source) SourceModel {
	return SourceModel{
		URI:     PathPrefix + "/sources/" + src.ID.String(),
		ID:      src.ID.String(),
		Owner:   src.OwnerID.String(),
		Name:    src.Name,
		Text:    src.Text,
		Created: formatTime(src.Created),
		Lexed:   src.Tokens != nil,
	}
}

func positionModel(p lex.Position) PositionModel {
	return PositionModel{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func tokenModels(toks []lex.Token) []TokenModel {
	models := make([]TokenModel, len(toks))
	for i, t := range toks {
		models[i] = TokenModel{
			Kind:   t.Kind.String(),
			Lexeme: t.Lexeme(),
			Start:  positionModel(t.Start),
			End:    positionModel(t.End),
		}

		switch t.Value.Type() {
		case lex.ValInt:
			models[i].Value = t.Value.Int()
		case lex.ValFloat:
			models[i].Value = t.Value.Float()
		case lex.ValString:
			models[i].Value = t.Value.Str()
		}
	}
	return models
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

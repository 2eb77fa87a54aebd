package sqlite

import (
	"encoding/base64"
	"net/mail"
	"time"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/google/uuid"
)

// file convert.go holds conversions between dao types and the column types
// they are stored as.

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Role(r dao.Role) string {
	return r.String()
}

func convertFromDB_Role(s string, target *dao.Role) error {
	r, err := dao.ParseRole(s)
	if err != nil {
		return err
	}
	*target = r
	return nil
}

func convertToDB_Email(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return email.Address
}

func convertFromDB_Email(s string, target **mail.Address) error {
	if s == "" {
		*target = nil
		return nil
	}
	email, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	*target = email
	return nil
}

// times are stored as unix seconds; the zero time is stored as 0.
func convertToDB_Time(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDB_Time(n int64, target *time.Time) error {
	if n == 0 {
		*target = time.Time{}
		return nil
	}
	*target = time.Unix(n, 0)
	return nil
}

// token blobs are stored base64-encoded in a TEXT column; NULL means no
// tokens are cached.
func convertToDB_Tokens(data []byte) interface{} {
	if data == nil {
		return nil
	}
	return base64.StdEncoding.EncodeToString(data)
}

func convertFromDB_Tokens(s *string, target *[]byte) error {
	if s == nil {
		*target = nil
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(*s)
	if err != nil {
		return err
	}
	*target = data
	return nil
}

package server

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/dao/inmem"
	"github.com/dekarrin/ecp/server/dao/sqlite"
)

// DBType is the engine behind a Database.
type DBType string

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// Token secrets are used as HS512 keys; anything past MaxSecretSize would be
// ignored.
const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

// DefaultUnauthDelayMillis is the UnauthDelayMillis of a Config after
// FillDefaults if it was not set.
const DefaultUnauthDelayMillis = 1000

func (dbt DBType) String() string {
	return string(dbt)
}

// ParseDBType parses the engine name of a connection string. Case is ignored.
// "none" is not accepted.
func ParseDBType(s string) (DBType, error) {
	switch dbt := DBType(strings.ToLower(strings.TrimSpace(s))); dbt {
	case DatabaseSQLite, DatabaseInMemory:
		return dbt, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database says where the server keeps its users and sources.
type Database struct {
	Type DBType

	// DataDir is the directory that holds the data.db file. Only used by
	// DatabaseSQLite.
	DataDir string
}

// ParseDBConnString parses a connection string of the form "engine" or
// "engine:dir", such as "inmem" or "sqlite:/var/ecp".
func ParseDBConnString(s string) (Database, error) {
	engine, dir, _ := strings.Cut(s, ":")

	dbt, err := ParseDBType(engine)
	if err != nil {
		return Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	db := Database{Type: dbt, DataDir: strings.TrimSpace(dir)}
	if dbt == DatabaseInMemory && db.DataDir != "" {
		return Database{}, fmt.Errorf("in-memory DB engine takes no params, but got %q", db.DataDir)
	}
	if err := db.Validate(); err != nil {
		return Database{}, err
	}
	return db, nil
}

// String gives db as a connection string that ParseDBConnString accepts.
func (db Database) String() string {
	if db.Type == DatabaseSQLite {
		return db.Type.String() + ":" + db.DataDir
	}
	return db.Type.String()
}

// Validate returns an error if db is not a usable engine or is missing a
// setting its engine needs.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("sqlite DB engine requires path to data directory after ':'")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid (perhaps you wanted 'inmem'?)")
	default:
		return fmt.Errorf("unknown DB engine: %q", db.Type.String())
	}
}

// Connect opens the store db describes. For sqlite, DataDir is created if it
// does not yet exist.
func (db Database) Connect() (dao.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return store, nil
}

// Config holds everything New needs to build a Server. Call FillDefaults to
// get a Config with every unset field given a usable value.
type Config struct {
	// TokenSecret signs login tokens. A random one is generated if unset, in
	// which case tokens do not survive a restart.
	TokenSecret []byte

	// DB defaults to in-memory persistence.
	DB Database

	// Keywords are the reserved words sources are tokenized with. Defaults to
	// lex.DefaultKeywords.
	Keywords lex.KeywordSet

	// UnauthDelayMillis is how long to stall before answering with an
	// HTTP-401, HTTP-403, or HTTP-500. Negative disables the stall.
	UnauthDelayMillis int

	// PasswordCost is the bcrypt cost of new password hashes. Zero uses
	// lexsvc.DefaultPasswordCost.
	PasswordCost int
}

// UnauthDelay gives UnauthDelayMillis as a Duration, or zero if it is not
// positive.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Duration(cfg.UnauthDelayMillis) * time.Millisecond
}

// FillDefaults returns a copy of cfg with every unset field given its default.
// It fails only if a token secret must be generated and cannot be.
func (cfg Config) FillDefaults() (Config, error) {
	if cfg.TokenSecret == nil {
		secret, err := GenerateSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.TokenSecret = secret
	}
	if cfg.DB.Type == "" || cfg.DB.Type == DatabaseNone {
		cfg.DB = Database{Type: DatabaseInMemory}
	}
	if cfg.Keywords == nil {
		cfg.Keywords = lex.DefaultKeywords()
	}
	if cfg.UnauthDelayMillis == 0 {
		cfg.UnauthDelayMillis = DefaultUnauthDelayMillis
	}
	return cfg, nil
}

// GenerateSecret returns MaxSecretSize random bytes.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, MaxSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}
	return secret, nil
}

// Validate returns an error describing the first invalid field of cfg. Unset
// fields are invalid; validate the result of FillDefaults to allow them.
func (cfg Config) Validate() error {
	if n := len(cfg.TokenSecret); n < MinSecretSize || n > MaxSecretSize {
		return fmt.Errorf("token secret: must be %d to %d bytes, but is %d", MinSecretSize, MaxSecretSize, n)
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	for _, w := range cfg.Keywords.Words() {
		if !lex.IsIdentifier(w) {
			return fmt.Errorf("keywords: %q is not an identifier", w)
		}
	}
	return nil
}

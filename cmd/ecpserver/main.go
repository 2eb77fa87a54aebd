/*
Ecpserver starts an ecp server and begins listening for new connections.

Usage:

	ecpserver [flags]
	ecpserver [flags] -l [[ADDRESS]:PORT]

Once started, the ecp server will listen for HTTP requests and respond to them
using REST protocol. By default, it will listen on localhost:8080. This can be
changed with the --listen/-l flag (or config via environment var or config
file). The flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the port preceeded by a colon, such as ":6001".

If a JWT token secret is not given, a random one is generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but a secret must be
given via either CLI flags or environment variable if running in production.

Settings are taken from flags first, then environment variables, then the
[server] and [lexer] sections of the config file.

The flags are:

	-v, --version
		Give the current version of the ecp server and then exit.

	-c, --config FILE
		Load settings from the given TOML config file. If not given, will
		default to the value of environment variable ECP_CONFIG.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		ECP_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable ECP_TOKEN_SECRET. If no secret is specified or an empty secret
		is given, a random secret will be automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable ECP_DATABASE. If no DB driver is
		specified, an in-memory database is automatically selected.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/ecp/internal/config"
	"github.com/dekarrin/ecp/internal/version"
	"github.com/dekarrin/ecp/server"
	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/serr"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "ECP_LISTEN_ADDRESS"
	EnvSecret = "ECP_TOKEN_SECRET"
	EnvDB     = "ECP_DATABASE"
	EnvConfig = "ECP_CONFIG"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the ecp server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (ecp lexer v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	fileCfg, err := loadConfigFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	listenAddr := setting("listen", *flagListen, EnvListen, fileCfg.Server.Listen)
	if listenAddr != "" && !strings.Contains(listenAddr, ":") {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg := server.Config{
		Keywords:          fileCfg.Keywords(),
		UnauthDelayMillis: fileCfg.Server.UnauthDelayMillis,
	}

	if dbConnStr := setting("db", *flagDB, EnvDB, fileCfg.Server.DB); dbConnStr != "" {
		cfg.DB, err = server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
	}

	if tokSecStr := setting("secret", *flagSecret, EnvSecret, ""); tokSecStr != "" {
		cfg.TokenSecret = padSecret([]byte(tokSecStr))

		if len(cfg.TokenSecret) > server.MaxSecretSize {
			// keys would be chopped at 64, so rather than the user thinking
			// they have more security by giving a longer key, refuse to start.
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= %d bytes\nDo -h for help.\n", len(cfg.TokenSecret), server.MaxSecretSize)
			os.Exit(1)
		}
	} else {
		// yell at the user bc they should know their secret might be bad
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()
	log.Printf("DEBUG Server initialized")

	// immediately create the admin user so we have someone we can log in as.
	_, err = srv.CreateUser(context.Background(), "admin", "password", "", dao.Admin)
	if err != nil && !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("INFO  Added initial admin user with password 'password'...")
	}

	log.Printf("INFO  Starting ecp server %s...", version.ServerCurrent)
	if err := srv.ServeForever(listenAddr); err != nil {
		log.Printf("FATAL %v", err)
		srv.Close()
		os.Exit(3)
	}
}

// setting returns the value of the named flag if it was set, else the value of
// env if it is set, else fileVal.
func setting(flagName, flagVal, env, fileVal string) string {
	if pflag.Lookup(flagName).Changed {
		return flagVal
	}
	if env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return fileVal
}

func loadConfigFile() (config.Config, error) {
	path := setting("config", *flagConfig, EnvConfig, "")
	if path == "" {
		return config.Config{}, nil
	}
	return config.Load(path)
}

// padSecret repeats secret until it is at least server.MinSecretSize bytes.
func padSecret(secret []byte) []byte {
	if len(secret) == 0 {
		return secret
	}
	for len(secret) < server.MinSecretSize {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	return secret
}

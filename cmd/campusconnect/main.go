package main

import (
	"fmt"
	"hash"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server"
	"github.com/prateekdahiya/campusconnect/pkg/securetoken"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"gopkg.in/natefinch/lumberjack.v2"
)

const dbname = "campusconnect.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
	log = logrus.New()
)

func main() {
	c := &cobra.Command{
		Use:     "campusconnect",
		Short:   "CampusConnect campus services server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func konfiguration() (*koanf.Koanf, error) {
	konf := koanf.New(".")
	if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "could not load configuration")
	}

	if filename := konf.String("log.file"); filename != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		})
	}
	if level, err := logrus.ParseLevel(konf.String("log.level")); err == nil {
		log.SetLevel(level)
	}

	return konf, nil
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Init the database and seed the admin account",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			konf, err := konfiguration()
			if err != nil {
				return err
			}

			name := dbnameWithPath(konf.String("database_path"))
			if err := database.StormInit(name, konf.String("database.codec")); err != nil {
				return err
			}

			email := konf.String("admin.email")
			if email == "" {
				return nil
			}

			db, err := database.StormOpen(name, konf.String("database.codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			if _, err := db.FindUserByMail(email); err == nil {
				log.Infof("Admin %s already seeded", email)
				return nil
			} else if !db.IsNotFound(err) {
				return err
			}

			password := securetoken.New(16)
			admin := model.NewUser()
			admin.Name = "Administrator"
			admin.Email = email
			admin.Role = model.RoleAdmin
			admin.Password, err = argon2.GenerateFromPasswordString(password, argon2.Default)
			if err != nil {
				return errors.Wrap(err, "could not store admin password safe")
			}

			if err := db.Save(admin); err != nil {
				return errors.Wrap(err, "could not persist admin")
			}

			log.Infof("Admin %s seeded with password %s", email, password)
			return nil
		},
	}

	//
	reindexCmd = &cobra.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			konf, err := konfiguration()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")), konf.String("database.codec"))
		},
	}

	//
	//
	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Start server",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			konf, err := konfiguration()
			if err != nil {
				return err
			}

			if konf.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), konf.String("database.codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			engine := server.EchoEngine(server.Controller{
				Version:             version,
				Database:            db,
				NoRegistration:      konf.Bool("no_registration"),
				SigningKey:          kdf(32, konf.MustBytes("secret_key")),
				TokenExpirationTime: konf.MustDuration("session.token_ttl"),
			})
			server.PrintRoutes(engine)

			address := konf.String("address")
			message := "could not run server"
			log.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					log.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)

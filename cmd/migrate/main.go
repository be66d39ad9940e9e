package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the *.sql migrations")
	steps := flag.Int("steps", 0, "apply n migrations (negative rolls back); 0 means all")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	m, err := migrate.New("file://"+*dir, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	switch {
	case *steps != 0:
		err = m.Steps(*steps)
	case cmd == "down":
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		log.Fatal(verr)
	}
	log.Printf("migration %s done (version=%d dirty=%v)", cmd, version, dirty)
}

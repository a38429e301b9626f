package service_test

import (
	"os"
	"testing"

	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
)

func setup(t *testing.T) database.Client {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "campusconnect.*.db")
	if err != nil {
		t.Fatal(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename, "msgpack")
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(filename)
	})
	return db
}

func mustSave(t *testing.T, db database.Client, m model.Model) {
	t.Helper()

	if err := db.Save(m); err != nil {
		t.Fatal(err)
	}
}

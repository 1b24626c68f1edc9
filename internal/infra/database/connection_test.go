package database

import "testing"

func TestDSNEscapesCredentials(t *testing.T) {
	p := Params{Host: "db", Port: "5432", User: "canteen", Password: "p@ss word", Name: "canteen"}
	want := "postgres://canteen:p%40ss%20word@db:5432/canteen?sslmode=disable"
	if got := p.DSN(); got != want {
		t.Fatalf("DSN = %s, want %s", got, want)
	}
}

func TestNilDBClose(t *testing.T) {
	var d *DB
	if err := d.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

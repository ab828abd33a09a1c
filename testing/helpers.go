// Package testing provides test utilities for sqlsketch.
package testing

import (
	"strings"
	"testing"

	"github.com/sqlsketch/sqlsketch"
)

// TestCatalog creates a fully-featured schema catalog for testing.
// Includes users, posts, comments, orders, and products tables with
// primary and foreign keys declared.
func TestCatalog(t *testing.T) *sqlsketch.Catalog {
	t.Helper()

	catalog := sqlsketch.NewCatalog()

	users := sqlsketch.NewTable("users")
	users.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	users.AddColumn(sqlsketch.NewColumn("username", "varchar"))
	users.AddColumn(sqlsketch.NewColumn("email", "varchar"))
	users.AddColumn(sqlsketch.NewColumn("age", "int"))
	users.AddColumn(sqlsketch.NewColumn("active", "boolean"))
	users.AddColumn(sqlsketch.NewColumn("created_at", "timestamp"))
	catalog.AddTable(users)

	posts := sqlsketch.NewTable("posts")
	posts.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	posts.AddColumn(sqlsketch.NewColumn("user_id", "bigint").References("users", "id"))
	posts.AddColumn(sqlsketch.NewColumn("title", "varchar"))
	posts.AddColumn(sqlsketch.NewColumn("body", "text"))
	posts.AddColumn(sqlsketch.NewColumn("published", "boolean"))
	posts.AddColumn(sqlsketch.NewColumn("views", "int"))
	posts.AddColumn(sqlsketch.NewColumn("created_at", "timestamp"))
	catalog.AddTable(posts)

	comments := sqlsketch.NewTable("comments")
	comments.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	comments.AddColumn(sqlsketch.NewColumn("post_id", "bigint").References("posts", "id"))
	comments.AddColumn(sqlsketch.NewColumn("user_id", "bigint").References("users", "id"))
	comments.AddColumn(sqlsketch.NewColumn("body", "text"))
	comments.AddColumn(sqlsketch.NewColumn("created_at", "timestamp"))
	catalog.AddTable(comments)

	orders := sqlsketch.NewTable("orders")
	orders.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	orders.AddColumn(sqlsketch.NewColumn("user_id", "bigint").References("users", "id"))
	orders.AddColumn(sqlsketch.NewColumn("total", "numeric"))
	orders.AddColumn(sqlsketch.NewColumn("status", "varchar"))
	orders.AddColumn(sqlsketch.NewColumn("created_at", "timestamp"))
	catalog.AddTable(orders)

	products := sqlsketch.NewTable("products")
	products.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	products.AddColumn(sqlsketch.NewColumn("name", "varchar"))
	products.AddColumn(sqlsketch.NewColumn("price", "numeric"))
	products.AddColumn(sqlsketch.NewColumn("category", "varchar"))
	products.AddColumn(sqlsketch.NewColumn("stock", "int"))
	catalog.AddTable(products)

	return catalog
}

// TestModel creates a query model over TestCatalog with the given tables
// already selected.
func TestModel(t *testing.T, tables ...string) *sqlsketch.QueryModel {
	t.Helper()

	m := sqlsketch.NewQueryModel(TestCatalog(t))
	for _, name := range tables {
		if _, err := m.AddTable(name, false); err != nil {
			t.Fatalf("Failed to add table %s: %v", name, err)
		}
	}
	return m
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected:\n%s\nActual:\n%s", expected, actual)
	}
}

// AssertComplete fails the test when a decompile report carries notes.
func AssertComplete(t *testing.T, rep sqlsketch.Report) {
	t.Helper()
	if !rep.Complete {
		t.Errorf("Expected complete decompilation, got notes: %v", rep.Notes)
	}
}

// AssertNoteContains checks that at least one report note mentions substr.
func AssertNoteContains(t *testing.T, rep sqlsketch.Report, substr string) {
	t.Helper()
	for _, note := range rep.Notes {
		if strings.Contains(note, substr) {
			return
		}
	}
	t.Errorf("Expected a note containing %q, got: %v", substr, rep.Notes)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

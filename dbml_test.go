package sqlsketch_test

import (
	"reflect"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/sqlsketch/sqlsketch"
)

func TestNewFromDBML(t *testing.T) {
	project := dbml.NewProject("shop")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	project.AddTable(posts)

	catalog, err := sqlsketch.NewFromDBML(project)
	if err != nil {
		t.Fatalf("NewFromDBML failed: %v", err)
	}

	if len(catalog.Tables) != 2 {
		t.Fatalf("Expected two tables, got %d", len(catalog.Tables))
	}
	if names := catalog.ColumnNames("posts"); !reflect.DeepEqual(names, []string{"id", "user_id", "title"}) {
		t.Errorf("Unexpected columns %v", names)
	}
	table, _ := catalog.Table("users")
	col, ok := table.Column("username")
	if !ok || col.DataType != "varchar" {
		t.Errorf("Unexpected column %+v (ok=%v)", col, ok)
	}
}

func TestNewFromDBML_NilProject(t *testing.T) {
	if _, err := sqlsketch.NewFromDBML(nil); err == nil {
		t.Error("Expected error for nil project")
	}
}

// DBML carries no key metadata here, so the naming heuristic is what connects
// the imported tables.
func TestNewFromDBML_HeuristicJoins(t *testing.T) {
	project := dbml.NewProject("blog")

	user := dbml.NewTable("user")
	user.AddColumn(dbml.NewColumn("id", "bigint"))
	project.AddTable(user)

	post := dbml.NewTable("post")
	post.AddColumn(dbml.NewColumn("id", "bigint"))
	post.AddColumn(dbml.NewColumn("user_id", "bigint"))
	project.AddTable(post)

	catalog, err := sqlsketch.NewFromDBML(project)
	if err != nil {
		t.Fatalf("NewFromDBML failed: %v", err)
	}

	// Key roles are layered on after import.
	table, _ := catalog.Table("user")
	if col, ok := table.Column("id"); ok {
		col.PrimaryKey()
	}

	m := sqlsketch.NewQueryModel(catalog)
	mustAddTable(t, m, "user", false)
	mustAddTable(t, m, "post", false)

	suggestions := sqlsketch.SuggestJoins(m)
	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %v", suggestions)
	}
	if s := suggestions[0]; s.RightColumn != "user_id" {
		t.Errorf("Unexpected suggestion %+v", s)
	}
}

package sqlsketch_test

import (
	"testing"

	"github.com/sqlsketch/sqlsketch"
)

func TestSuggestJoins_ForeignKey(t *testing.T) {
	catalog := storeCatalog(t)

	// The same relationship is found regardless of which table came first.
	for _, order := range [][]string{
		{"customers", "orders"},
		{"orders", "customers"},
	} {
		m := sqlsketch.NewQueryModel(catalog)
		for _, name := range order {
			mustAddTable(t, m, name, false)
		}

		suggestions := sqlsketch.SuggestJoins(m)
		if len(suggestions) != 1 {
			t.Fatalf("Expected one suggestion for %v, got %v", order, suggestions)
		}
		s := suggestions[0]
		if s.LeftTable != "orders" || s.LeftColumn != "customer_id" ||
			s.RightTable != "customers" || s.RightColumn != "id" {
			t.Errorf("Unexpected suggestion %+v", s)
		}
		if s.Type != sqlsketch.InnerJoin {
			t.Errorf("Expected INNER JOIN suggestion, got %q", s.Type)
		}
	}
}

func TestSuggestJoins_TransitiveTables(t *testing.T) {
	m := sqlsketch.NewQueryModel(storeCatalog(t))
	mustAddTable(t, m, "orders", false)
	mustAddTable(t, m, "order_items", false)
	mustAddTable(t, m, "products", false)

	suggestions := sqlsketch.SuggestJoins(m)
	if len(suggestions) != 2 {
		t.Fatalf("Expected two suggestions, got %v", suggestions)
	}
	if s := suggestions[0]; s.LeftTable != "order_items" || s.LeftColumn != "order_id" {
		t.Errorf("Unexpected first suggestion %+v", s)
	}
	if s := suggestions[1]; s.LeftTable != "order_items" || s.LeftColumn != "product_id" {
		t.Errorf("Unexpected second suggestion %+v", s)
	}
}

func TestSuggestJoins_ExistingJoinExcluded(t *testing.T) {
	m := sqlsketch.NewQueryModel(storeCatalog(t))
	mustAddTable(t, m, "customers", false)
	mustAddTable(t, m, "orders", false)

	// Applied in the opposite orientation from how the engine would emit it.
	if err := m.AddJoin(sqlsketch.JoinSpec{
		LeftTable: "customers", LeftColumn: "id",
		RightTable: "orders", RightColumn: "customer_id",
	}); err != nil {
		t.Fatalf("AddJoin failed: %v", err)
	}

	if suggestions := sqlsketch.SuggestJoins(m); len(suggestions) != 0 {
		t.Errorf("Expected applied join excluded, got %v", suggestions)
	}
}

func TestSuggestJoins_NamingHeuristic(t *testing.T) {
	catalog := sqlsketch.NewCatalog()

	site := sqlsketch.NewTable("site")
	site.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	site.AddColumn(sqlsketch.NewColumn("domain", "varchar"))
	catalog.AddTable(site)

	// site_id is named like a foreign key but not declared as one.
	page := sqlsketch.NewTable("page")
	page.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	page.AddColumn(sqlsketch.NewColumn("site_id", "bigint"))
	page.AddColumn(sqlsketch.NewColumn("path", "varchar"))
	catalog.AddTable(page)

	m := sqlsketch.NewQueryModel(catalog)
	mustAddTable(t, m, "page", false)
	mustAddTable(t, m, "site", false)

	suggestions := sqlsketch.SuggestJoins(m)
	if len(suggestions) != 1 {
		t.Fatalf("Expected one suggestion, got %v", suggestions)
	}
	s := suggestions[0]
	if s.LeftTable != "site" || s.LeftColumn != "id" ||
		s.RightTable != "page" || s.RightColumn != "site_id" {
		t.Errorf("Unexpected suggestion %+v", s)
	}
}

func TestSuggestJoins_DeclaredKeyShadowsHeuristic(t *testing.T) {
	catalog := sqlsketch.NewCatalog()

	site := sqlsketch.NewTable("site")
	site.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	catalog.AddTable(site)

	page := sqlsketch.NewTable("page")
	page.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	page.AddColumn(sqlsketch.NewColumn("site_id", "bigint").References("site", "id"))
	catalog.AddTable(page)

	m := sqlsketch.NewQueryModel(catalog)
	mustAddTable(t, m, "site", false)
	mustAddTable(t, m, "page", false)

	// Declared key and naming heuristic describe the same pair; only one
	// suggestion survives dedup.
	suggestions := sqlsketch.SuggestJoins(m)
	if len(suggestions) != 1 {
		t.Fatalf("Expected the duplicate collapsed, got %v", suggestions)
	}
	if s := suggestions[0]; s.LeftTable != "page" || s.LeftColumn != "site_id" {
		t.Errorf("Expected the declared key to win, got %+v", s)
	}
}

func TestSuggestJoins_SelfJoinAliases(t *testing.T) {
	catalog := sqlsketch.NewCatalog()

	node := sqlsketch.NewTable("node")
	node.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	node.AddColumn(sqlsketch.NewColumn("parent_id", "bigint").References("node", "id"))
	catalog.AddTable(node)

	m := sqlsketch.NewQueryModel(catalog)
	mustAddTable(t, m, "node", false)
	mustAddTable(t, m, "node", true)

	suggestions := sqlsketch.SuggestJoins(m)
	if len(suggestions) == 0 {
		t.Fatal("Expected self-join suggestions")
	}
	for _, s := range suggestions {
		if s.LeftTable == s.RightTable {
			t.Errorf("Suggestion joins a table key to itself: %+v", s)
		}
	}
}

func TestSuggestJoins_Degenerate(t *testing.T) {
	if got := sqlsketch.SuggestJoins(sqlsketch.NewQueryModel(nil)); got != nil {
		t.Errorf("Expected nil without a catalog, got %v", got)
	}

	m := sqlsketch.NewQueryModel(storeCatalog(t))
	mustAddTable(t, m, "orders", false)
	if got := sqlsketch.SuggestJoins(m); got != nil {
		t.Errorf("Expected nil for a single table, got %v", got)
	}

	m2 := sqlsketch.NewQueryModel(storeCatalog(t))
	mustAddTable(t, m2, "customers", false)
	mustAddTable(t, m2, "products", false)
	if got := sqlsketch.SuggestJoins(m2); len(got) != 0 {
		t.Errorf("Expected no suggestions for unrelated tables, got %v", got)
	}
}

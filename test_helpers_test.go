package sqlsketch_test

import (
	"testing"

	"github.com/sqlsketch/sqlsketch"
)

// storeCatalog builds the schema shared by most tests: a small web-shop with
// declared foreign keys plus an employees table for self-join cases.
func storeCatalog(t *testing.T) *sqlsketch.Catalog {
	t.Helper()

	catalog := sqlsketch.NewCatalog()

	customers := sqlsketch.NewTable("customers")
	customers.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	customers.AddColumn(sqlsketch.NewColumn("name", "varchar"))
	customers.AddColumn(sqlsketch.NewColumn("email", "varchar"))
	catalog.AddTable(customers)

	orders := sqlsketch.NewTable("orders")
	orders.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	orders.AddColumn(sqlsketch.NewColumn("customer_id", "bigint").References("customers", "id"))
	orders.AddColumn(sqlsketch.NewColumn("total", "numeric"))
	orders.AddColumn(sqlsketch.NewColumn("status", "varchar"))
	catalog.AddTable(orders)

	products := sqlsketch.NewTable("products")
	products.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	products.AddColumn(sqlsketch.NewColumn("name", "varchar"))
	products.AddColumn(sqlsketch.NewColumn("price", "numeric"))
	catalog.AddTable(products)

	items := sqlsketch.NewTable("order_items")
	items.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	items.AddColumn(sqlsketch.NewColumn("order_id", "bigint").References("orders", "id"))
	items.AddColumn(sqlsketch.NewColumn("product_id", "bigint").References("products", "id"))
	items.AddColumn(sqlsketch.NewColumn("quantity", "int"))
	catalog.AddTable(items)

	employees := sqlsketch.NewTable("employees")
	employees.AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey())
	employees.AddColumn(sqlsketch.NewColumn("name", "varchar"))
	employees.AddColumn(sqlsketch.NewColumn("age", "int"))
	employees.AddColumn(sqlsketch.NewColumn("manager_id", "bigint").Null())
	catalog.AddTable(employees)

	return catalog
}

// mustAddTable adds a table or fails the test.
func mustAddTable(t *testing.T, m *sqlsketch.QueryModel, name string, force bool) sqlsketch.TableRef {
	t.Helper()
	ref, err := m.AddTable(name, force)
	if err != nil {
		t.Fatalf("AddTable(%s, %v) failed: %v", name, force, err)
	}
	return ref
}

// assertSQL compares compiled SQL with a detailed diff on mismatch.
func assertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected:\n%s\nActual:\n%s", expected, actual)
	}
}

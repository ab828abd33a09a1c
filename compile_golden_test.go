package sqlsketch_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/sqlsketch/sqlsketch"
)

// TestCompile_Golden pins the full rendered output of representative queries.
// Regenerate with:
//
//	go test . -run TestCompile_Golden -update
func TestCompile_Golden(t *testing.T) {
	catalog := storeCatalog(t)

	scenarios := []struct {
		name  string
		build func(t *testing.T) *sqlsketch.QueryModel
	}{
		{
			name: "single_table",
			build: func(t *testing.T) *sqlsketch.QueryModel {
				m := sqlsketch.NewQueryModel(catalog)
				mustAddTable(t, m, "customers", false)
				return m
			},
		},
		{
			name: "order_report",
			build: func(t *testing.T) *sqlsketch.QueryModel {
				m := sqlsketch.NewQueryModel(catalog)
				mustAddTable(t, m, "customers", false)
				mustAddTable(t, m, "orders", false)
				require.NoError(t, m.SetAlias("orders", "o"))
				require.NoError(t, m.SelectNone("customers"))
				require.NoError(t, m.ToggleColumn("customers", "name"))
				require.NoError(t, m.AddJoin(sqlsketch.JoinSpec{
					LeftTable: "customers", LeftColumn: "id",
					RightTable: "o", RightColumn: "customer_id",
				}))
				require.NoError(t, m.AddCondition(sqlsketch.ConditionSpec{
					Column: "o.status", Operator: sqlsketch.EQ, Value: "shipped",
				}))
				require.NoError(t, m.AddCondition(sqlsketch.ConditionSpec{
					Column: "o.total", Operator: sqlsketch.GE, Value: "100",
				}))
				require.NoError(t, m.AddOrder("o.total"))
				require.NoError(t, m.ToggleDirection("o.total"))
				require.NoError(t, m.SetLimit(20))
				require.NoError(t, m.SetOffset(40))
				return m
			},
		},
		{
			name: "org_chart",
			build: func(t *testing.T) *sqlsketch.QueryModel {
				m := sqlsketch.NewQueryModel(catalog)
				mustAddTable(t, m, "employees", false)
				mustAddTable(t, m, "employees", true)
				require.NoError(t, m.SelectNone("employees"))
				require.NoError(t, m.ToggleColumn("employees", "name"))
				require.NoError(t, m.SelectNone("employees_2"))
				require.NoError(t, m.ToggleColumn("employees_2", "name"))
				require.NoError(t, m.AddJoin(sqlsketch.JoinSpec{
					Type:      sqlsketch.LeftJoin,
					LeftTable: "employees", LeftColumn: "manager_id",
					RightTable: "employees_2", RightColumn: "id",
				}))
				require.NoError(t, m.AddCondition(sqlsketch.ConditionSpec{
					Column: "employees.age", Operator: sqlsketch.BETWEEN, Value: "18,65",
				}))
				return m
			},
		},
		{
			name: "status_rollup",
			build: func(t *testing.T) *sqlsketch.QueryModel {
				m := sqlsketch.NewQueryModel(catalog)
				mustAddTable(t, m, "orders", false)
				require.NoError(t, m.SelectNone("orders"))
				require.NoError(t, m.ToggleColumn("orders", "status"))
				require.NoError(t, m.AddCondition(sqlsketch.ConditionSpec{
					Column: "status", Operator: sqlsketch.IN, Value: "'open', 'shipped'",
				}))
				require.NoError(t, m.AddCondition(sqlsketch.ConditionSpec{
					Column: "customer_id", Operator: sqlsketch.IsNotNull,
				}))
				require.NoError(t, m.AddGroup("status"))
				require.NoError(t, m.AddOrder("status"))
				return m
			},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			m := sc.build(t)
			g.Assert(t, sc.name, []byte(m.SQL()))
		})
	}
}

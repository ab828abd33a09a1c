// Package sqlsketch is the core of a visual SELECT-statement builder: a
// mutable query model plus a bidirectional compiler between that model and
// SQL text, and a foreign-key-driven join suggestion engine.
//
// # Query model
//
// A QueryModel holds one SELECT query as structured state: tables with
// optional aliases, per-table column selections, equality joins, a flat
// AND/OR condition chain, grouping, ordering, and pagination. Mutators
// validate before mutating, so a rejected call never leaves partial state:
//
//	catalog := sqlsketch.NewCatalog()
//	catalog.AddTable(sqlsketch.NewTable("orders").
//		AddColumn(sqlsketch.NewColumn("id", "bigint").PrimaryKey()).
//		AddColumn(sqlsketch.NewColumn("customer_id", "bigint").References("customers", "id")))
//
//	model := sqlsketch.NewQueryModel(catalog)
//	model.AddTable("orders", false)
//	model.AddCondition(sqlsketch.ConditionSpec{Column: "id", Operator: sqlsketch.GT, Value: "100"})
//	sql := sqlsketch.Compile(model)
//
// # Compile and decompile
//
// Compile is deterministic and total over structurally valid models.
// Decompile goes the other way, reconstructing a model from SQL typed or
// loaded by a user. It is best-effort over a restricted grammar subset
// (single FROM, equality ON-joins, flat AND-only WHERE, plain
// GROUP/ORDER/LIMIT/OFFSET); anything outside it is omitted from the model
// and reported, never raised as an error. Within that subset, compiling a
// decompiled model reproduces the original statement.
//
// # Join suggestions
//
// SuggestJoins proposes joins for the selected tables from catalog foreign
// keys in either direction, falling back to a "<table>_<pk>" column naming
// heuristic. Suggestions are deduplicated and non-binding.
//
// # Schema catalogs
//
// Catalogs are built programmatically, loaded from YAML documents, or
// adapted from DBML projects with NewFromDBML. All resolution against the
// catalog is case-insensitive, and an absent or stale catalog degrades
// resolution to pass-through rather than failing.
package sqlsketch

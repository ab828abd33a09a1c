package sqlsketch

import (
	"encoding/json"
	"fmt"
)

// State is the direct field-set serialization of a QueryModel. Saved queries
// persist this instead of SQL text, since decompilation is lossy.
type State struct {
	Tables     []TableRef          `json:"tables"`
	Columns    map[string][]string `json:"columns"`
	Joins      []JoinSpec          `json:"joins,omitempty"`
	Conditions []ConditionSpec     `json:"conditions,omitempty"`
	GroupBy    []string            `json:"groupBy,omitempty"`
	OrderBy    []OrderSpec         `json:"orderBy,omitempty"`
	Limit      *int                `json:"limit,omitempty"`
	Offset     *int                `json:"offset,omitempty"`
}

// Snapshot captures the model's current field set as an independent State.
func (m *QueryModel) Snapshot() State {
	st := State{
		Tables:     m.Tables(),
		Columns:    make(map[string][]string, len(m.columns)),
		Joins:      m.Joins(),
		Conditions: m.Conditions(),
		GroupBy:    m.GroupBy(),
		OrderBy:    m.OrderBy(),
	}
	for key, sel := range m.columns {
		st.Columns[key] = append([]string(nil), sel...)
	}
	if m.limit != nil {
		n := *m.limit
		st.Limit = &n
	}
	if m.offset != nil {
		n := *m.offset
		st.Offset = &n
	}
	return st
}

// RestoreState rebuilds a model from a snapshot against the given catalog.
// The state is copied; ordinal assignment resumes past the highest restored
// ordinal.
func RestoreState(catalog *Catalog, st State) *QueryModel {
	m := NewQueryModel(catalog)
	m.tables = append(m.tables, st.Tables...)
	for key, sel := range st.Columns {
		m.columns[key] = append([]string(nil), sel...)
	}
	m.joins = append(m.joins, st.Joins...)
	m.conditions = append(m.conditions, st.Conditions...)
	m.groupBy = append(m.groupBy, st.GroupBy...)
	m.orderBy = append(m.orderBy, st.OrderBy...)
	if st.Limit != nil {
		n := *st.Limit
		m.limit = &n
	}
	if st.Offset != nil {
		n := *st.Offset
		m.offset = &n
	}
	for _, t := range m.tables {
		if t.Ordinal >= m.nextOrdinal {
			m.nextOrdinal = t.Ordinal + 1
		}
	}
	return m
}

// MarshalState encodes a snapshot as indented JSON.
func MarshalState(st State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a snapshot from JSON.
func UnmarshalState(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decoding state: %w", err)
	}
	if st.Columns == nil {
		st.Columns = make(map[string][]string)
	}
	return st, nil
}

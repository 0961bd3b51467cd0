package purse

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/etnz/purse/date"
)

// Record is an entry of a pass-through collection, identified by its ID.
type Record interface {
	RecordID() string
}

// Collection is an ordered list of records with unique IDs.
type Collection[T Record] struct {
	items []T
}

// Add appends a record. A record without ID, or with an ID already in the
// collection, is rejected.
func (c *Collection[T]) Add(item T) error {
	id := item.RecordID()
	if id == "" {
		return &ValidationError{Field: "id", Reason: "missing"}
	}
	if c.Has(id) {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("%q already exists", id)}
	}
	c.items = append(c.items, item)
	return nil
}

// Put replaces the record with the same ID, or appends it.
func (c *Collection[T]) Put(item T) error {
	if item.RecordID() == "" {
		return &ValidationError{Field: "id", Reason: "missing"}
	}
	if i := c.index(item.RecordID()); i >= 0 {
		c.items[i] = item
		return nil
	}
	c.items = append(c.items, item)
	return nil
}

// Remove deletes the record with id and reports whether it existed.
func (c *Collection[T]) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c Collection[T]) Has(id string) bool { return c.index(id) >= 0 }
func (c Collection[T]) Len() int           { return len(c.items) }

// All returns a copy of the records in insertion order.
func (c Collection[T]) All() []T { return slices.Clone(c.items) }

func (c Collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return item.RecordID() == id })
}

func (c Collection[T]) clone() Collection[T] { return Collection[T]{items: slices.Clone(c.items)} }

func (c Collection[T]) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = nil
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return err
		}
	}
	return nil
}

// BudgetGoal is a savings target.
type BudgetGoal struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Target   Money     `json:"target"`
	Saved    Money     `json:"saved"`
	Deadline date.Date `json:"deadline"`
}

func (g BudgetGoal) RecordID() string { return g.ID }

// Beneficiary is a saved payee.
type Beneficiary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Bank    string `json:"bank"`
	Account string `json:"account"`
}

func (b Beneficiary) RecordID() string { return b.ID }

// Invoice is a bill issued by the user.
type Invoice struct {
	ID     string    `json:"id"`
	Client string    `json:"client"`
	Amount Money     `json:"amount"`
	Due    date.Date `json:"due"`
	Paid   bool      `json:"paid"`
}

func (i Invoice) RecordID() string { return i.ID }

// Agent is an assistant configured by the user.
type Agent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Enabled bool   `json:"enabled"`
}

func (a Agent) RecordID() string { return a.ID }

// Records are the collections owned by the UI layer and persisted as is.
type Records struct {
	Goals         Collection[BudgetGoal]  `json:"goals"`
	Beneficiaries Collection[Beneficiary] `json:"beneficiaries"`
	Invoices      Collection[Invoice]     `json:"invoices"`
	Agents        Collection[Agent]       `json:"agents"`
}

func (r Records) clone() Records {
	return Records{
		Goals:         r.Goals.clone(),
		Beneficiaries: r.Beneficiaries.clone(),
		Invoices:      r.Invoices.clone(),
		Agents:        r.Agents.clone(),
	}
}

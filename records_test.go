package purse

import (
	"encoding/json"
	"testing"
)

func TestCollection(t *testing.T) {
	var c Collection[Beneficiary]
	if err := c.Add(Beneficiary{ID: "b1", Name: "Chidi"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Add(Beneficiary{ID: "b1", Name: "Amaka"}); err == nil {
		t.Errorf("Add() accepted a duplicate id")
	}
	if err := c.Add(Beneficiary{Name: "Nobody"}); err == nil {
		t.Errorf("Add() accepted an empty id")
	}
	if err := c.Put(Beneficiary{ID: "b1", Name: "Chidi O."}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put(Beneficiary{ID: "b2", Name: "Amaka"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	all := c.All()
	if len(all) != 2 || all[0].Name != "Chidi O." || all[1].ID != "b2" {
		t.Errorf("All() = %+v", all)
	}
	if !c.Remove("b1") || c.Remove("b1") || c.Has("b1") || c.Len() != 1 {
		t.Errorf("Remove() left %+v", c.All())
	}
}

func TestCollection_JSON(t *testing.T) {
	var empty Records
	data, err := json.Marshal(empty)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"goals":[],"beneficiaries":[],"invoices":[],"agents":[]}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var c Collection[Agent]
	if err := json.Unmarshal([]byte(`[{"id":"a1"},{"id":"a1"}]`), &c); err == nil {
		t.Errorf("Unmarshal() accepted duplicate ids")
	}
	if err := json.Unmarshal([]byte(`[{"id":"a1","name":"Budget"},{"id":"a2"}]`), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Len() != 2 || c.All()[0].Name != "Budget" {
		t.Errorf("Unmarshal() = %+v", c.All())
	}
}

func TestUserState_Clone(t *testing.T) {
	s := funded(1000)
	s.Goals.Add(BudgetGoal{ID: "g1", Name: "Laptop", Target: NGN(900000)})
	c := s.Clone()
	c.Holdings[0].Quantity = Q(99)
	c.Goals.Remove("g1")
	c.Transactions = append(c.Transactions, Transaction{ID: "x"})
	if s.Holdings[0].Quantity.Equal(Q(99)) || !s.Goals.Has("g1") || len(s.Transactions) != 0 {
		t.Errorf("Clone() shares memory with the original")
	}
}

package category

import (
	"encoding/json"
	"fmt"
	"os"
)

// document is the persisted JSON shape. It round-trips losslessly through
// Save and Load.
type document struct {
	ExpenseCategories []string          `json:"expense_categories"`
	IncomeCategories  []string          `json:"income_categories"`
	PaymentCategories []string          `json:"payment_categories"`
	Mappings          map[string]string `json:"mappings"`
}

// Load reads the category document from disk. A missing, unreadable or
// corrupt file falls back to the default taxonomy with empty mappings; the
// returned error describes the fallback cause and is informational only.
// The returned Store is always usable.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading category config, using defaults: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Default(), fmt.Errorf("parsing category config, using defaults: %w", err)
	}

	s := Default()
	if doc.ExpenseCategories != nil {
		s.Expense = doc.ExpenseCategories
	}
	if doc.IncomeCategories != nil {
		s.Income = doc.IncomeCategories
	}
	if doc.PaymentCategories != nil {
		s.Payment = doc.PaymentCategories
	}
	if doc.Mappings != nil {
		s.Mappings = doc.Mappings
	}
	return s, nil
}

// Save writes the category document to disk as one atomic whole.
func (s *Store) Save(path string) error {
	doc := document{
		ExpenseCategories: s.Expense,
		IncomeCategories:  s.Income,
		PaymentCategories: s.Payment,
		Mappings:          s.Mappings,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling category config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing category config: %w", err)
	}
	return nil
}

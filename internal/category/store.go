// Package category holds the spending taxonomy and the learned mapping
// from transaction descriptions to categories.
package category

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// Kind identifies which taxonomy list a category name belongs to.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
	KindPayment Kind = "payment"
)

// Store is the mutable aggregate of taxonomy and learned mappings, owned
// by the session and passed by reference into the engine. Mapping keys are
// normalized descriptions; values may dangle after a category is removed,
// which is tolerated rather than validated.
type Store struct {
	Expense  []string
	Income   []string
	Payment  []string
	Mappings map[string]string
}

// Default returns the built-in taxonomy with no learned mappings.
func Default() *Store {
	return &Store{
		Expense: []string{
			"Rent", "Bills & Utilities", "Groceries", "Restaurants", "Laundry",
			"Gas", "Automotive", "Parking", "Personal", "Travel", "Shopping",
			"Entertainment", "Video Games", "Books", "Clothes", "Furniture",
			"Gifts", "Gym",
		},
		Income:   []string{"Salary", "Bonus"},
		Payment:  []string{"Card Payment", "Transfer", "Return"},
		Mappings: make(map[string]string),
	}
}

// Normalize produces the lookup key for a description: case-folded and
// whitespace-trimmed. Two descriptions differing only by case or
// surrounding whitespace are the same key.
func Normalize(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// Categorize returns the learned category for a description, or
// "Uncategorized" when nothing has been learned.
func (s *Store) Categorize(description string) string {
	if cat, ok := s.Mappings[Normalize(description)]; ok {
		return cat
	}
	return model.CategoryUncategorized
}

// Apply assigns categories in bulk to every transaction that has none.
// This runs after Amazon reconciliation so that a reconciled description
// is looked up instead of the generic "AMAZON.COM" one.
func (s *Store) Apply(txns []model.Transaction) {
	for i := range txns {
		if txns[i].Category == "" {
			txns[i].Category = s.Categorize(txns[i].Description)
		}
	}
}

// Learn records a description to category mapping, overwriting any earlier
// one. Last write wins; no history is kept.
func (s *Store) Learn(description, category string) {
	if s.Mappings == nil {
		s.Mappings = make(map[string]string)
	}
	s.Mappings[Normalize(description)] = category
}

// IsExpense reports whether a category name is in the expense taxonomy.
func (s *Store) IsExpense(category string) bool {
	return slices.Contains(s.Expense, category)
}

// IsIncome reports whether a category name is in the income taxonomy.
func (s *Store) IsIncome(category string) bool {
	return slices.Contains(s.Income, category)
}

// IsPayment reports whether a category name is in the payment taxonomy.
func (s *Store) IsPayment(category string) bool {
	return slices.Contains(s.Payment, category)
}

// Add appends a category name to one taxonomy list if not already present.
func (s *Store) Add(kind Kind, name string) error {
	list, err := s.list(kind)
	if err != nil {
		return err
	}
	if !slices.Contains(*list, name) {
		*list = append(*list, name)
	}
	return nil
}

// Remove deletes a category name from one taxonomy list. Transactions
// already carrying the name and mappings that point to it are untouched.
func (s *Store) Remove(kind Kind, name string) error {
	list, err := s.list(kind)
	if err != nil {
		return err
	}
	*list = slices.DeleteFunc(*list, func(c string) bool { return c == name })
	return nil
}

func (s *Store) list(kind Kind) (*[]string, error) {
	switch kind {
	case KindExpense:
		return &s.Expense, nil
	case KindIncome:
		return &s.Income, nil
	case KindPayment:
		return &s.Payment, nil
	default:
		return nil, fmt.Errorf("unknown category kind %q", kind)
	}
}

/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package transaction defines RecurringTransaction, the budget record whose
// Frequency field is a recurrence.Rule.
//
// The JSON field names match the payload of the budgeting API the record is
// exchanged with; Frequency travels as its canonical wire string:
//
//	{
//	  "id": "5b0c...",
//	  "title": "Rent",
//	  "frequency": "M;1;DAY-1;08:00:00",
//	  "start": "2025-01-01T00:00:00Z",
//	  "amount": 125000,
//	  "expense": true,
//	  "createdBy": "u-1",
//	  "budgetId": "b-1"
//	}
//
// A record whose frequency string does not parse fails to decode. Callers
// reading a batch should treat that as a data-integrity error for that record
// and continue with the rest.
package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model"
	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"dirpx.dev/dxrecur/dxcore/schedule"
	"dirpx.dev/rxmerr"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// RecurringTransaction is a budget entry that repeats on a schedule.
//
// Amount is in minor currency units (cents) and never negative; Expense
// tells whether it is money going out. Description, End and CategoryID are
// optional.
type RecurringTransaction struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Frequency   recurrence.Rule `json:"frequency" yaml:"frequency"`
	Start       time.Time       `json:"start" yaml:"start"`
	End         *time.Time      `json:"end,omitempty" yaml:"end,omitempty"`
	Amount      int64           `json:"amount" yaml:"amount"`
	CategoryID  *string         `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	Expense     bool            `json:"expense" yaml:"expense"`
	CreatedBy   string          `json:"createdBy" yaml:"createdBy"`
	BudgetID    string          `json:"budgetId" yaml:"budgetId"`
}

// New returns a RecurringTransaction with a fresh random UUID as its ID and
// Start truncated to whole seconds in UTC. The result is validated.
func New(title string, frequency recurrence.Rule, start time.Time, amount int64, expense bool, createdBy, budgetID string) (RecurringTransaction, error) {
	tx := RecurringTransaction{
		ID:        uuid.NewString(),
		Title:     title,
		Frequency: frequency,
		Start:     start.UTC().Truncate(time.Second),
		Amount:    amount,
		Expense:   expense,
		CreatedBy: createdBy,
		BudgetID:  budgetID,
	}
	if err := tx.Validate(); err != nil {
		return RecurringTransaction{}, err
	}
	return tx, nil
}

// Compile-time assertion that RecurringTransaction implements model.Model.
var _ model.Model = (*RecurringTransaction)(nil)

// Signed returns Amount as a signed value: negative for expenses.
func (t RecurringTransaction) Signed() int64 {
	if t.Expense {
		return -t.Amount
	}
	return t.Amount
}

// Active reports whether at falls within [Start, End].
func (t RecurringTransaction) Active(at time.Time) bool {
	if at.Before(t.Start) {
		return false
	}
	return t.End == nil || !at.After(*t.End)
}

// Occurrences returns the instants in [from, to] on which the transaction
// fires, clipped to [Start, End]. The expansion is anchored at Start.
func (t RecurringTransaction) Occurrences(from, to time.Time, opts schedule.Options) ([]time.Time, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if from.Before(t.Start) {
		from = t.Start
	}
	if t.End != nil && to.After(*t.End) {
		to = *t.End
	}
	if to.Before(from) {
		return nil, nil
	}

	return schedule.Between(t.Frequency, t.Start, from, to, opts)
}

// Next returns the first occurrence strictly after after, if the transaction
// is still active then.
func (t RecurringTransaction) Next(after time.Time, loc *time.Location) (time.Time, bool) {
	if after.Before(t.Start) {
		after = t.Start.Add(-time.Nanosecond)
	}
	s, err := schedule.New(t.Frequency, t.Start, loc)
	if err != nil {
		return time.Time{}, false
	}
	next, ok := s.Next(after).Get()
	if !ok || !t.Active(next) {
		return time.Time{}, false
	}
	return next, true
}

// String returns a debugging form including the amount.
func (t RecurringTransaction) String() string {
	return fmt.Sprintf("RecurringTransaction{ID:%s, Title:%s, Frequency:%s, Amount:%d, Expense:%t, Budget:%s}",
		t.ID, t.Title, t.Frequency.String(), t.Amount, t.Expense, t.BudgetID)
}

// Redacted is like String with the amount masked and the description left
// out. Use it for logs.
func (t RecurringTransaction) Redacted() string {
	return fmt.Sprintf("RecurringTransaction{ID:%s, Title:%s, Frequency:%s, Amount:***, Expense:%t, Budget:%s}",
		t.ID, t.Title, t.Frequency.Redacted(), t.Expense, t.BudgetID)
}

// TypeName returns "RecurringTransaction".
func (t RecurringTransaction) TypeName() string {
	return "RecurringTransaction"
}

// IsZero reports whether t is the zero value.
func (t RecurringTransaction) IsZero() bool {
	return t.ID == "" &&
		t.Title == "" &&
		t.Description == nil &&
		t.Frequency.IsZero() &&
		t.Start.IsZero() &&
		t.End == nil &&
		t.Amount == 0 &&
		t.CategoryID == nil &&
		!t.Expense &&
		t.CreatedBy == "" &&
		t.BudgetID == ""
}

// Equal reports whether t and other hold the same values. Times compare as
// instants.
func (t RecurringTransaction) Equal(other RecurringTransaction) bool {
	if t.ID != other.ID ||
		t.Title != other.Title ||
		!t.Frequency.Equal(other.Frequency) ||
		!t.Start.Equal(other.Start) ||
		t.Amount != other.Amount ||
		t.Expense != other.Expense ||
		t.CreatedBy != other.CreatedBy ||
		t.BudgetID != other.BudgetID {
		return false
	}
	if !equalString(t.Description, other.Description) || !equalString(t.CategoryID, other.CategoryID) {
		return false
	}
	if (t.End == nil) != (other.End == nil) {
		return false
	}
	return t.End == nil || t.End.Equal(*other.End)
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate reports every violated field at once. Each failure is a
// *dxerrors.ValidationError; an invalid Frequency additionally matches
// recurrence.ErrInvalidRule through errors.Is.
func (t RecurringTransaction) Validate() error {
	c := rxmerr.NewCollector()

	required := []struct {
		field string
		value string
	}{
		{"ID", t.ID},
		{"Title", t.Title},
		{"CreatedBy", t.CreatedBy},
		{"BudgetID", t.BudgetID},
	}
	for _, r := range required {
		if r.value == "" {
			c.Append(t.invalid(r.field, "must not be empty", nil))
		}
	}

	if err := t.Frequency.Validate(); err != nil {
		c.Append(&frequencyError{
			ValidationError: t.invalid("Frequency", err.Error(), nil),
			err:             err,
		})
	}

	if t.Start.IsZero() {
		c.Append(t.invalid("Start", "must be set", nil))
	}
	if t.End != nil && t.End.Before(t.Start) {
		c.Append(t.invalid("End", "must not be before Start", t.End.Format(time.RFC3339)))
	}

	if t.Amount < 0 {
		c.Append(t.invalid("Amount", "must not be negative; use Expense for outgoing money", t.Amount))
	}

	return c.Err()
}

func (t RecurringTransaction) invalid(field, reason string, value any) *dxerrors.ValidationError {
	return &dxerrors.ValidationError{Type: t.TypeName(), Field: field, Reason: reason, Value: value}
}

// frequencyError keeps the codec failure reachable from a ValidationError.
type frequencyError struct {
	*dxerrors.ValidationError
	err error
}

func (e *frequencyError) Unwrap() []error { return []error{e.ValidationError, e.err} }

// MarshalJSON validates t and encodes it with the original field names.
func (t RecurringTransaction) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}

	type recurringTransaction RecurringTransaction
	return json.Marshal(recurringTransaction(t))
}

// UnmarshalJSON decodes and validates a JSON object. A frequency string that
// does not parse yields an error matching recurrence.ErrInvalidRule.
func (t *RecurringTransaction) UnmarshalJSON(data []byte) error {
	type recurringTransaction RecurringTransaction
	var decoded recurringTransaction
	if err := json.Unmarshal(data, &decoded); err != nil {
		if errors.Is(err, recurrence.ErrInvalidRule) {
			return fmt.Errorf("unmarshaled %s is invalid: %w", t.TypeName(), err)
		}
		return &dxerrors.UnmarshalError{Type: t.TypeName(), Data: data, Reason: err.Error()}
	}

	tx := RecurringTransaction(decoded)
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", t.TypeName(), err)
	}

	*t = tx
	return nil
}

// MarshalYAML validates t and encodes it with the same keys as JSON.
func (t RecurringTransaction) MarshalYAML() (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}

	type recurringTransaction RecurringTransaction
	return recurringTransaction(t), nil
}

// UnmarshalYAML decodes and validates a YAML mapping.
func (t *RecurringTransaction) UnmarshalYAML(node *yaml.Node) error {
	type recurringTransaction RecurringTransaction
	var decoded recurringTransaction
	if err := node.Decode(&decoded); err != nil {
		if errors.Is(err, recurrence.ErrInvalidRule) {
			return fmt.Errorf("unmarshaled %s is invalid: %w", t.TypeName(), err)
		}
		return &dxerrors.UnmarshalError{Type: t.TypeName(), Reason: err.Error()}
	}

	tx := RecurringTransaction(decoded)
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", t.TypeName(), err)
	}

	*t = tx
	return nil
}

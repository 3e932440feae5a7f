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

package transaction_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model"
	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"dirpx.dev/dxrecur/dxcore/model/transaction"
	"dirpx.dev/dxrecur/dxcore/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func rent(t *testing.T) transaction.RecurringTransaction {
	t.Helper()
	tx, err := transaction.New(
		"Rent",
		recurrence.MustParse("M;1;DAY-1;08:00:00"),
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		125000,
		true,
		"u-1",
		"b-1",
	)
	require.NoError(t, err)
	return tx
}

func ptr[T any](v T) *T { return &v }

func TestNew(t *testing.T) {
	tx := rent(t)

	_, err := uuid.Parse(tx.ID)
	assert.NoError(t, err, "ID %q is not a UUID", tx.ID)
	assert.Equal(t, "Rent", tx.Title)
	assert.Equal(t, int64(-125000), tx.Signed())
	assert.Equal(t, "RecurringTransaction", tx.TypeName())
	assert.False(t, tx.IsZero())

	other := rent(t)
	assert.NotEqual(t, tx.ID, other.ID)
}

func TestNew_Invalid(t *testing.T) {
	_, err := transaction.New("", recurrence.Rule{}, time.Time{}, -1, false, "", "")
	require.Error(t, err)

	for _, field := range []string{
		"RecurringTransaction.Title",
		"RecurringTransaction.Frequency",
		"RecurringTransaction.Start",
		"RecurringTransaction.Amount",
		"RecurringTransaction.CreatedBy",
		"RecurringTransaction.BudgetID",
	} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*transaction.RecurringTransaction)
		field  string
	}{
		{name: "valid", mutate: func(*transaction.RecurringTransaction) {}},
		{name: "missing_id", mutate: func(tx *transaction.RecurringTransaction) { tx.ID = "" }, field: "ID"},
		{name: "missing_title", mutate: func(tx *transaction.RecurringTransaction) { tx.Title = "" }, field: "Title"},
		{name: "missing_budget", mutate: func(tx *transaction.RecurringTransaction) { tx.BudgetID = "" }, field: "BudgetID"},
		{name: "negative_amount", mutate: func(tx *transaction.RecurringTransaction) { tx.Amount = -5 }, field: "Amount"},
		{name: "zero_frequency", mutate: func(tx *transaction.RecurringTransaction) { tx.Frequency = recurrence.Rule{} }, field: "Frequency"},
		{
			name: "end_before_start",
			mutate: func(tx *transaction.RecurringTransaction) {
				tx.End = ptr(tx.Start.Add(-time.Hour))
			},
			field: "End",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := rent(t)
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "RecurringTransaction."+tt.field)
		})
	}
}

func TestJSON(t *testing.T) {
	tx := rent(t)
	tx.Description = ptr("monthly rent")
	tx.CategoryID = ptr("c-housing")

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "M;1;DAY-1;08:00:00", raw["frequency"])
	assert.Equal(t, "2025-01-01T00:00:00Z", raw["start"])
	assert.Equal(t, "c-housing", raw["categoryId"])
	assert.Equal(t, "b-1", raw["budgetId"])
	assert.Equal(t, "u-1", raw["createdBy"])
	assert.NotContains(t, raw, "end")

	var out transaction.RecurringTransaction
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Equal(tx))
}

func TestJSON_BadFrequency(t *testing.T) {
	payload := `{
		"id": "t-1",
		"title": "Gym",
		"frequency": "W;1;;09:00:00",
		"start": "2025-01-01T00:00:00Z",
		"amount": 3000,
		"expense": true,
		"createdBy": "u-1",
		"budgetId": "b-1"
	}`

	var tx transaction.RecurringTransaction
	err := json.Unmarshal([]byte(payload), &tx)
	require.Error(t, err)
	assert.ErrorIs(t, err, recurrence.ErrInvalidRule)
	assert.True(t, tx.IsZero())
}

func TestJSON_Malformed(t *testing.T) {
	var tx transaction.RecurringTransaction
	err := json.Unmarshal([]byte(`{"amount": "lots"}`), &tx)
	var ue *dxerrors.UnmarshalError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "RecurringTransaction", ue.Type)
}

func TestJSON_Batch(t *testing.T) {
	good := rent(t)
	goodJSON, err := json.Marshal(good)
	require.NoError(t, err)
	bad := strings.Replace(string(goodJSON), "M;1;DAY-1;08:00:00", "M;1;DAY-40;08:00:00", 1)

	records := []string{string(goodJSON), bad, string(goodJSON)}
	slots := make([]*transaction.RecurringTransaction, len(records))
	var failures int
	for i, rec := range records {
		slots[i] = &transaction.RecurringTransaction{}
		if err := json.Unmarshal([]byte(rec), slots[i]); err != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.True(t, slots[1].IsZero(), "rejected record must stay zero")

	decoded := model.FilterZero(slots)
	assert.Len(t, decoded, 2)
	assert.NoError(t, model.ValidateAll(decoded))
}

func TestClone(t *testing.T) {
	tx := rent(t)
	tx.Description = ptr("monthly rent")
	tx.End = ptr(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))

	clone, err := model.Clone(&tx)
	require.NoError(t, err)
	assert.True(t, model.Equal(&tx, clone))
	assert.True(t, clone.Equal(tx))

	*clone.Description = "changed"
	assert.Equal(t, "monthly rent", *tx.Description)
	assert.False(t, model.Equal(&tx, clone))
}

func TestYAML(t *testing.T) {
	tx := rent(t)
	tx.End = ptr(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))

	data, err := yaml.Marshal(tx)
	require.NoError(t, err)

	var out transaction.RecurringTransaction
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.True(t, out.Equal(tx))
}

func TestRedacted(t *testing.T) {
	tx := rent(t)
	tx.Description = ptr("landlord account 1234")

	assert.Contains(t, tx.String(), "125000")
	assert.NotContains(t, tx.Redacted(), "125000")
	assert.NotContains(t, tx.Redacted(), "landlord")
	assert.Equal(t, tx.Redacted(), model.SafeString(&tx, false))
}

func TestOccurrences(t *testing.T) {
	tx := rent(t)
	tx.End = ptr(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	got, err := tx.Occurrences(
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		schedule.Options{},
	)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, got[2].Equal(time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)))

	none, err := tx.Occurrences(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		schedule.Options{},
	)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNext(t *testing.T) {
	tx := rent(t)
	tx.End = ptr(time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	next, ok := tx.Next(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), nil)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)))

	next, ok = tx.Next(time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC), nil)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC)))

	_, ok = tx.Next(time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC), nil)
	assert.False(t, ok)
}

func TestActive(t *testing.T) {
	tx := rent(t)
	assert.False(t, tx.Active(tx.Start.Add(-time.Second)))
	assert.True(t, tx.Active(tx.Start))
	assert.True(t, tx.Active(tx.Start.AddDate(10, 0, 0)))

	tx.End = ptr(tx.Start.AddDate(0, 1, 0))
	assert.True(t, tx.Active(*tx.End))
	assert.False(t, tx.Active(tx.End.Add(time.Second)))
}

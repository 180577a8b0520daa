package formdata_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/formdata"
)

func TestValue_String(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value formdata.Value
		want  string
	}{
		{"undefined", formdata.Value{}, ""},
		{"null", formdata.Null(), ""},
		{"string", formdata.String("Acme"), "Acme"},
		{"empty string", formdata.String(""), ""},
		{"int", formdata.Int(42), "42"},
		{"zero", formdata.Int(0), "0"},
		{"negative int", formdata.Int(-7), "-7"},
		{"float", formdata.Number(19.5), "19.5"},
		{"whole float", formdata.Number(3), "3"},
		{"bool", formdata.Bool(false), "false"},
		{"time", formdata.Time(ts), "2026-10-18T09:30:00Z"},
		{"list", formdata.List("red", "blue"), "red,blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValue_IsDefined(t *testing.T) {
	t.Parallel()

	require.False(t, formdata.Value{}.IsDefined())
	require.True(t, formdata.Null().IsDefined())
	require.True(t, formdata.Int(0).IsDefined())
	require.True(t, formdata.String("").IsDefined())
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	require.Equal(t, formdata.KindNull, formdata.FromAny(nil).Kind())
	require.Equal(t, formdata.KindInt, formdata.FromAny(float64(42)).Kind())
	require.Equal(t, "42", formdata.FromAny(float64(42)).String())
	require.Equal(t, formdata.KindNumber, formdata.FromAny(1.25).Kind())
	require.Equal(t, "a,2", formdata.FromAny([]any{"a", float64(2)}).String())
	require.Equal(t, "x", formdata.FromAny(formdata.String("x")).String())
	require.Equal(t, "99", formdata.FromAny(json.Number("99")).String())
}

func TestValue_JSON(t *testing.T) {
	t.Parallel()

	var v formdata.Value
	require.NoError(t, json.Unmarshal([]byte(`12.75`), &v))
	require.Equal(t, formdata.KindNumber, v.Kind())
	require.Equal(t, "12.75", v.String())

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &v))
	require.Equal(t, "a,b", v.String())

	err := json.Unmarshal([]byte(`{"nested":true}`), &v)
	require.ErrorIs(t, err, formdata.ErrInvalidValue)

	out, err := json.Marshal(formdata.Int(5))
	require.NoError(t, err)
	require.JSONEq(t, `5`, string(out))
}

func TestOrderedMap_SetKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	var m formdata.OrderedMap[int]
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	require.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 3, v)
	require.Equal(t, 2, m.Len())

	_, ok = m.Get("missing")
	require.False(t, ok)
}

func TestOrderedMap_NilSafe(t *testing.T) {
	t.Parallel()

	var m *formdata.OrderedMap[string]
	require.Equal(t, 0, m.Len())
	require.False(t, m.Has("x"))
	for range m.All() {
		t.Fatal("nil map must not yield")
	}
}

func TestOrderedMap_JSONPreservesOrder(t *testing.T) {
	t.Parallel()

	var m formdata.OrderedMap[formdata.Value]
	err := json.Unmarshal([]byte(`{"zeta":1,"alpha":"two","mid":true}`), &m)
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"zeta":1,"alpha":"two","mid":true}`, string(out))

	require.ErrorIs(t, json.Unmarshal([]byte(`[1,2]`), &m), formdata.ErrInvalidMap)
}

func TestSubmission_JSON(t *testing.T) {
	t.Parallel()

	raw := `{
		"clientName": "Acme",
		"formName": "Brief",
		"formValues": {
			"q2": {"label": "Deadline", "value": "2026-11-01"},
			"q1": {"label": "Budget", "value": 5000},
			"q3": {"label": "Notes"}
		}
	}`

	var sub formdata.Submission
	require.NoError(t, json.Unmarshal([]byte(raw), &sub))
	require.Equal(t, "Acme", sub.ClientName)
	require.Equal(t, []string{"q2", "q1", "q3"}, sub.FormValues.Keys())

	budget, ok := sub.FormValues.Get("q1")
	require.True(t, ok)
	require.Equal(t, "5000", budget.Value.String())

	notes, ok := sub.FormValues.Get("q3")
	require.True(t, ok)
	require.False(t, notes.Value.IsDefined())
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{"Amount", "amount"},
		{"Budget (USD)", "budget__usd_"},
		{"Start-Date", "start_date"},
		{"already_snake_1", "already_snake_1"},
		{"Café", "caf_"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, formdata.NormalizeKey(tt.label))
		})
	}
}

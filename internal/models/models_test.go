package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductComputeTotal(t *testing.T) {
	p := Product{Quantity: 10, UnitPrice: 2.5, TotalValue: 999}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, 25.0, p.TotalValue)
}

func TestBeforeCreateAssignsIdentity(t *testing.T) {
	u := User{}
	require.NoError(t, u.BeforeCreate(nil))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleUser, u.Role)

	p := Product{ID: "fixed"}
	require.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, "fixed", p.ID)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("toys").Valid())
	assert.False(t, Category("").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("root").Valid())
}

func TestJSONB(t *testing.T) {
	j := NewJSONB(map[string]any{"name": "Widget"})
	v, err := j.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Widget"}`, v.(string))

	var empty JSONB
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var scanned JSONB
	require.NoError(t, scanned.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, string(scanned))
	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, "{}", string(scanned))

	out, err := NewJSONB(nil).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

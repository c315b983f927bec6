package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleRecruiter.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_PublicOmitsPassword(t *testing.T) {
	u := &User{
		ID:          "u-1",
		FullName:    "Jo",
		Email:       "jo@x.com",
		PhoneNumber: "555",
		Password:    "$2a$10$digest",
		Role:        RoleStudent,
	}

	b, err := json.Marshal(u.Public())
	require.NoError(t, err)

	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "$2a$10$digest")
	assert.JSONEq(t, `{
		"_id": "u-1",
		"fullname": "Jo",
		"email": "jo@x.com",
		"phoneNumber": "555",
		"role": "student",
		"profile": {"bio": "", "skills": []}
	}`, string(b))
}

func TestUser_PublicKeepsSkillOrder(t *testing.T) {
	u := &User{Profile: Profile{Bio: "x", Skills: []string{"go", "sql", "k8s"}}}
	assert.Equal(t, []string{"go", "sql", "k8s"}, u.Public().Profile.Skills)
}

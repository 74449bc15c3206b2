// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/donatetracker/internal/handlers"
	"codeberg.org/oliverandrich/donatetracker/internal/testutil"
)

func TestPublic_AnonymizesDonors(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.NewTestUser(t, env.repo, "donor@x.com", "secret")
	testutil.NewTestDonation(t, env.repo, &user.ID, "donor@x.com", 42)
	testutil.NewTestDonation(t, env.repo, nil, "other@x.com", 13)

	c, rec := testutil.NewEchoContext(env.e, http.MethodGet, "/public", nil)

	require.NoError(t, env.h.Public(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, handlers.AnonymousDonorName)
	assert.Contains(t, body, "42.00")
	assert.Contains(t, body, "13.00")

	// No donor identity leaks, linked or not
	assert.NotContains(t, body, "Test Donor")
	assert.NotContains(t, body, "donor@x.com")
	assert.NotContains(t, body, "other@x.com")
}

func TestPublic_Empty(t *testing.T) {
	env := newTestEnv(t)

	c, rec := testutil.NewEchoContext(env.e, http.MethodGet, "/public", nil)

	require.NoError(t, env.h.Public(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

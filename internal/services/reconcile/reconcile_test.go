// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/donatetracker/internal/services/reconcile"
	"codeberg.org/oliverandrich/donatetracker/internal/testutil"
)

func TestLinkOnRegistration(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := reconcile.NewService(repo)
	ctx := context.Background()

	matching := testutil.NewTestDonation(t, repo, nil, "a@x.com", 50)
	testutil.NewTestDonation(t, repo, nil, "b@x.com", 25)

	user := testutil.NewTestUser(t, repo, "a@x.com", "secret")

	linked, err := service.LinkOnRegistration(ctx, "a@x.com", user.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, linked)

	donation, err := repo.GetDonationByID(ctx, matching.ID)
	require.NoError(t, err)
	require.NotNil(t, donation.UserID)
	assert.Equal(t, user.ID, *donation.UserID)

	// The non-matching donation stays unlinked
	unlinked, err := repo.ListUnlinkedDonations(ctx)
	require.NoError(t, err)
	require.Len(t, unlinked, 1)
	assert.Equal(t, "b@x.com", unlinked[0].Email)
}

func TestLinkOnRegistration_CaseSensitive(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := reconcile.NewService(repo)
	ctx := context.Background()

	testutil.NewTestDonation(t, repo, nil, "A@x.com", 50)
	user := testutil.NewTestUser(t, repo, "a@x.com", "secret")

	linked, err := service.LinkOnRegistration(ctx, "a@x.com", user.ID)

	require.NoError(t, err)
	assert.Zero(t, linked)
}

func TestLinkOnRegistration_IgnoresAlreadyLinked(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := reconcile.NewService(repo)
	ctx := context.Background()

	owner := testutil.NewTestUser(t, repo, "owner@x.com", "secret")
	testutil.NewTestDonation(t, repo, &owner.ID, "a@x.com", 50)

	user := testutil.NewTestUser(t, repo, "a@x.com", "secret")

	linked, err := service.LinkOnRegistration(ctx, "a@x.com", user.ID)

	require.NoError(t, err)
	assert.Zero(t, linked)
}

func TestSweepAll(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := reconcile.NewService(repo)
	ctx := context.Background()

	userA := testutil.NewTestUser(t, repo, "a@x.com", "secret")
	userB := testutil.NewTestUser(t, repo, "b@x.com", "secret")

	testutil.NewTestDonation(t, repo, nil, "a@x.com", 10)
	testutil.NewTestDonation(t, repo, nil, "a@x.com", 20)
	testutil.NewTestDonation(t, repo, nil, "b@x.com", 30)
	testutil.NewTestDonation(t, repo, nil, "nobody@x.com", 40)

	linked, err := service.SweepAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, linked)

	forA, err := repo.ListDonationsForUser(ctx, userA.ID)
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	forB, err := repo.ListDonationsForUser(ctx, userB.ID)
	require.NoError(t, err)
	assert.Len(t, forB, 1)
}

func TestSweepAll_Idempotent(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := reconcile.NewService(repo)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "a@x.com", "secret")
	testutil.NewTestDonation(t, repo, nil, "a@x.com", 10)

	linked, err := service.SweepAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, linked)

	// Second run links nothing: linked donations left the unlinked set
	linked, err = service.SweepAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, linked)
}

func TestSweepAll_NoMatches(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	service := reconcile.NewService(repo)

	testutil.NewTestDonation(t, repo, nil, "nobody@x.com", 10)

	linked, err := service.SweepAll(context.Background())

	require.NoError(t, err)
	assert.Zero(t, linked)
}

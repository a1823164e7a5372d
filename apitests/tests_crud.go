package apitests

import (
	"github.com/qa-harness/e2e-harness/petstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoCreateTests(t *T) {
	t.Run("create pet with valid data", func(t *T) {
		pet := t.Gen().SimplePet()

		resp, err := t.Client().CreatePet(pet)
		t.RequireStatus(resp, err, 200, "create pet")
		created, err := resp.DecodePet()
		require.NoError(t, err)
		t.DeleteAtEnd(created.ID)

		assert.Equal(t, pet.Name, created.Name)
		assert.Equal(t, pet.Status, created.Status)

		t.AwaitPetStatus(created.ID, 200)
	})
}

func DoGetTests(t *T) {
	t.Run("get pet by id", func(t *T) {
		pet := t.CreatePet(t.Gen().SimplePet())

		resp := t.AwaitPetStatus(pet.ID, 200)
		fetched, err := resp.DecodePet()
		require.NoError(t, err)

		assert.Equal(t, pet.ID, fetched.ID)
		assert.NotEmpty(t, fetched.Name)
		assert.Equal(t, petstore.StatusAvailable, fetched.Status)
	})
}

func DoUpdateTests(t *T) {
	t.Run("update pet details", func(t *T) {
		pet := t.CreatePet(t.Gen().SimplePet())

		updated := t.Gen().DetailedPet()
		updated.ID = pet.ID
		updated.Status = petstore.StatusSold
		resp, err := t.Client().UpdatePet(updated)
		t.RequireStatus(resp, err, 200, "update pet")

		t.AwaitAsserted("pet to be sold", func(a require.TestingT) {
			resp, err := t.Client().GetPet(pet.ID)
			require.NoError(a, err)
			require.Equal(a, 200, resp.StatusCode)
			p, err := resp.DecodePet()
			require.NoError(a, err)
			assert.Equal(a, petstore.StatusSold, p.Status)
			assert.Equal(a, updated.Name, p.Name)
			if assert.NotNil(a, p.Category) {
				assert.NotEmpty(a, p.Category.Name)
			}
			assert.NotEmpty(a, p.Tags)
		})
	})
}

func DoDeleteTests(t *T) {
	t.Run("delete pet by id", func(t *T) {
		pet := t.CreatePet(t.Gen().SimplePet())

		t.AwaitStatus("DELETE /pet/"+formatID(pet.ID)+" to succeed", 200, func() (*petstore.Response, error) {
			return t.Client().DeletePet(pet.ID)
		})
		t.AwaitPetStatus(pet.ID, 404)
	})
}

func DoFindByStatusTests(t *T) {
	t.Run("pending pet is listed as pending", func(t *T) {
		gen := t.Gen()
		pet := t.CreatePet(gen.PetWith(gen.Name(), petstore.StatusPending))

		t.AwaitAsserted("pet to be listed as pending", func(a require.TestingT) {
			resp, err := t.Client().FindByStatus(petstore.StatusPending)
			require.NoError(a, err)
			require.Equal(a, 200, resp.StatusCode)
			pets, err := resp.DecodePets()
			require.NoError(a, err)
			found := false
			for _, p := range pets {
				assert.Equal(a, petstore.StatusPending, p.Status, "pet %d", p.ID)
				found = found || p.ID == pet.ID
			}
			assert.True(a, found, "pet %d not listed", pet.ID)
		})
	})
}

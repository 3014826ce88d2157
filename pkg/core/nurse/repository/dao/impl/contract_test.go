package dao

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nurse-directory/pkg/common/config"
	apperrors "nurse-directory/pkg/common/errors"
	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

type repoFactory func(t *testing.T) dao.NurseRepository

func backends() map[string]repoFactory {
	return map[string]repoFactory{
		"memory": func(t *testing.T) dao.NurseRepository {
			return NewMemoryNurseRepository()
		},
		"file": func(t *testing.T) dao.NurseRepository {
			repo, err := NewFileNurseRepository(filepath.Join(t.TempDir(), "data", "nurses.json"))
			require.NoError(t, err)
			return repo
		},
		"sqlite": func(t *testing.T) dao.NurseRepository {
			cfg := config.Config{
				Store: config.StoreConfig{Backend: "database"},
				Database: config.DatabaseConfig{
					Driver:     "sqlite",
					SQLitePath: filepath.Join(t.TempDir(), "hospital.db"),
					LogLevel:   "silent",
				},
			}
			repo, err := NewNurseRepository(&cfg)
			require.NoError(t, err)
			return repo
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, repo dao.NurseRepository)) {
	for name, factory := range backends() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func seed(t *testing.T, repo dao.NurseRepository, nurses ...model.Nurse) []model.Nurse {
	t.Helper()
	out := make([]model.Nurse, 0, len(nurses))
	for _, n := range nurses {
		stored, err := repo.Insert(context.Background(), n)
		require.NoError(t, err)
		out = append(out, stored)
	}
	return out
}

func jdoe() model.Nurse {
	return model.Nurse{
		User:         "jdoe",
		Name:         "Jane Doe",
		Pw:           "secret",
		Specialty:    model.StringPtr("Pediatrics"),
		Location:     model.StringPtr("North Wing"),
		Availability: model.StringPtr("Morning"),
	}
}

func users(nurses []model.Nurse) []string {
	out := make([]string, 0, len(nurses))
	for _, n := range nurses {
		out = append(out, n.User)
	}
	return out
}

func TestInsertAndLookup(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		stored, err := repo.Insert(ctx, jdoe())
		require.NoError(t, err)
		assert.NotZero(t, stored.ID)

		byID, err := repo.QueryByID(ctx, stored.ID)
		require.NoError(t, err)
		byUser, err := repo.QueryByUser(ctx, "jdoe")
		require.NoError(t, err)

		assert.Equal(t, stored, byID)
		assert.Equal(t, byID, byUser)
		assert.Equal(t, "secret", byID.Pw)
		assert.Nil(t, byID.Title)

		_, err = repo.QueryByID(ctx, stored.ID+100)
		assert.ErrorIs(t, err, apperrors.ErrNurseNotFound)
		_, err = repo.QueryByUser(ctx, "nobody")
		assert.ErrorIs(t, err, apperrors.ErrNurseNotFound)
	})
}

func TestInsertDuplicateUserLeavesStoreUnchanged(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		seed(t, repo, jdoe())

		dup := jdoe()
		dup.Name = "Impostor"
		_, err := repo.Insert(ctx, dup)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Jane Doe", all[0].Name)
	})
}

func TestUserIsCaseSensitive(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		upper := jdoe()
		upper.User = "JDOE"
		stored := seed(t, repo, jdoe(), upper)

		got, err := repo.QueryByUser(ctx, "JDOE")
		require.NoError(t, err)
		assert.Equal(t, stored[1].ID, got.ID)

		_, err = repo.QueryByUser(ctx, "Jdoe")
		assert.ErrorIs(t, err, apperrors.ErrNurseNotFound)
	})
}

func TestListFiltered(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		seed(t, repo,
			jdoe(),
			model.Nurse{User: "bsmith", Name: "Bob Smith", Pw: "pw", Specialty: model.StringPtr("Oncology"),
				Location: model.StringPtr("South Wing"), Availability: model.StringPtr("Night")},
			model.Nurse{User: "a_b", Name: "Underscore", Pw: "pw", Specialty: model.StringPtr("Pediatrics"),
				Location: model.StringPtr("100% North"), Availability: model.StringPtr("Night")},
			model.Nurse{User: "axb", Name: "Plain", Pw: "pw"},
		)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"jdoe", "bsmith", "a_b", "axb"}, users(all))

		unfiltered, err := repo.ListFiltered(ctx, model.Filter{})
		require.NoError(t, err)
		assert.Equal(t, all, unfiltered)

		cases := []struct {
			name   string
			filter model.Filter
			want   []string
		}{
			{"name matches name", model.Filter{Name: "Smith"}, []string{"bsmith"}},
			{"name matches user", model.Filter{Name: "jdo"}, []string{"jdoe"}},
			{"name is case-sensitive", model.Filter{Name: "SMITH"}, []string{}},
			{"underscore is literal", model.Filter{Name: "a_b"}, []string{"a_b"}},
			{"percent is literal", model.Filter{Location: "100%"}, []string{"a_b"}},
			{"specialty exact", model.Filter{Specialty: "Pediatrics"}, []string{"jdoe", "a_b"}},
			{"specialty miss", model.Filter{Specialty: "Pedia"}, []string{}},
			{"specialty sentinel", model.Filter{Specialty: model.AllSpecialties}, []string{"jdoe", "bsmith", "a_b", "axb"}},
			{"location substring", model.Filter{Location: "Wing"}, []string{"jdoe", "bsmith"}},
			{"availability exact", model.Filter{Availability: "Night"}, []string{"bsmith", "a_b"}},
			{"availability sentinel", model.Filter{Availability: model.AnyAvailability}, []string{"jdoe", "bsmith", "a_b", "axb"}},
			{"conjunction", model.Filter{Specialty: "Pediatrics", Availability: "Night"}, []string{"a_b"}},
			{"conjunction miss", model.Filter{Name: "Jane", Specialty: "Oncology"}, []string{}},
		}
		for _, tc := range cases {
			got, err := repo.ListFiltered(ctx, tc.filter)
			require.NoError(t, err, tc.name)
			assert.Equal(t, tc.want, users(got), tc.name)
		}
	})
}

func TestUpdate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		stored := seed(t, repo, jdoe())[0]

		updated, err := repo.Update(ctx, stored.ID, model.NursePatch{
			Name:     model.Some("Jane Q. Doe"),
			Title:    model.Some("Charge Nurse"),
			Location: model.Null(),
		})
		require.NoError(t, err)
		assert.Equal(t, stored.ID, updated.ID)
		assert.Equal(t, "jdoe", updated.User)
		assert.Equal(t, "Jane Q. Doe", updated.Name)
		assert.Equal(t, "Charge Nurse", *updated.Title)
		assert.Nil(t, updated.Location)
		assert.Equal(t, "Pediatrics", *updated.Specialty)
		assert.Equal(t, "secret", updated.Pw)

		reloaded, err := repo.QueryByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, reloaded)

		same, err := repo.Update(ctx, stored.ID, model.NursePatch{})
		require.NoError(t, err)
		assert.Equal(t, reloaded, same)

		withPw, err := repo.Update(ctx, stored.ID, model.NursePatch{Pw: model.Some("n3w")})
		require.NoError(t, err)
		assert.Equal(t, "n3w", withPw.Pw)

		_, err = repo.Update(ctx, stored.ID+100, model.NursePatch{Title: model.Some("x")})
		assert.ErrorIs(t, err, apperrors.ErrNurseNotFound)
	})
}

func TestDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		stored := seed(t, repo, jdoe(), model.Nurse{User: "second", Name: "second", Pw: "pw"})

		require.NoError(t, repo.Delete(ctx, stored[1].ID))
		_, err := repo.QueryByID(ctx, stored[1].ID)
		assert.ErrorIs(t, err, apperrors.ErrNurseNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, stored[1].ID), apperrors.ErrNurseNotFound)

		third, err := repo.Insert(ctx, model.Nurse{User: "third", Name: "third", Pw: "pw"})
		require.NoError(t, err)
		assert.Greater(t, third.ID, stored[1].ID, "ids are never reused")

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"jdoe", "third"}, users(all))
	})
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		ctx := context.Background()
		stored := seed(t, repo, jdoe())[0]

		got, err := repo.QueryByID(ctx, stored.ID)
		require.NoError(t, err)
		*got.Specialty = "Tampered"

		again, err := repo.QueryByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pediatrics", *again.Specialty)
	})
}

func TestPing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo dao.NurseRepository) {
		assert.NoError(t, repo.Ping(context.Background()))
	})
}

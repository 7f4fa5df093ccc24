package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/dfsviz/internal/adapters/repository"
	"github.com/okian/dfsviz/internal/domain/model"
)

func sampleCollections() model.Collections {
	return model.Group([]model.Player{
		{Name: "Josh Allen", ID: "1", Position: model.QB, Team: "BUF", Salary: 8100, Projection: 24.1},
		{Name: "Bills", ID: "2", Position: model.DST, Team: "BUF", Salary: 3200, Missing: []string{"ceiling"}},
		{Name: "Flex Guy", ID: "3", Position: model.All},
	})
}

// storeContract runs the Store behaviour shared by every implementation.
func storeContract(newStore func(t *testing.T) repository.Store) func() {
	return func() {
		ctx := context.Background()

		convey.Convey("When nothing has been saved", func() {
			s := newStore(nil)
			defer s.Close()

			_, err := s.Load(ctx)

			convey.Convey("Then Load reports an empty slot", func() {
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
				convey.So(s.Count(ctx), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When a slate is saved", func() {
			s := newStore(nil)
			defer s.Close()
			want := sampleCollections()

			convey.So(s.Save(ctx, want), convey.ShouldBeNil)
			got, err := s.Load(ctx)

			convey.Convey("Then the same shape comes back", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, want)
				convey.So(s.Count(ctx), convey.ShouldEqual, 3)
			})

			convey.Convey("Then mutating the loaded value does not touch the slot", func() {
				got[model.All][0].Name = "changed"
				again, _ := s.Load(ctx)
				convey.So(again[model.All][0].Name, convey.ShouldEqual, "Josh Allen")
			})

			convey.Convey("Then a second save replaces the first", func() {
				next := model.Group([]model.Player{{Name: "Only", ID: "9", Position: model.TE}})
				convey.So(s.Save(ctx, next), convey.ShouldBeNil)
				got, err := s.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got[model.All], convey.ShouldHaveLength, 1)
				convey.So(got[model.QB], convey.ShouldBeEmpty)
				convey.So(s.Count(ctx), convey.ShouldEqual, 1)
			})

			convey.Convey("Then Clear empties the slot", func() {
				convey.So(s.Clear(ctx), convey.ShouldBeNil)
				_, err := s.Load(ctx)
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
				convey.So(s.Count(ctx), convey.ShouldEqual, 0)
				convey.So(s.Clear(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When an empty slate is saved", func() {
			s := newStore(nil)
			defer s.Close()

			convey.So(s.Save(ctx, model.Group(nil)), convey.ShouldBeNil)
			got, err := s.Load(ctx)

			convey.Convey("Then it loads as six empty collections", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldHaveLength, 6)
				convey.So(got[model.All], convey.ShouldBeEmpty)
			})
		})
	}
}

func TestMemoryStore(t *testing.T) {
	convey.Convey("Given a memory store", t, storeContract(func(*testing.T) repository.Store {
		return repository.NewMemoryStore()
	}))

	convey.Convey("Given a closed memory store", t, func() {
		s := repository.NewMemoryStore(repository.WithSlot("custom"))
		convey.So(s.Slot(), convey.ShouldEqual, "custom")
		convey.So(s.Close(), convey.ShouldBeNil)

		convey.Convey("Then every write fails", func() {
			err := s.Save(context.Background(), sampleCollections())
			convey.So(errors.Is(err, repository.ErrClosed), convey.ShouldBeTrue)
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	dir := t.TempDir()
	n := 0
	open := func(*testing.T) repository.Store {
		n++
		path := filepath.Join(dir, "slate"+string(rune('a'+n))+".db")
		s, err := repository.NewSQLiteStore(context.Background(), path)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		return s
	}

	convey.Convey("Given a sqlite store", t, storeContract(open))

	convey.Convey("Given a database file reopened", t, func() {
		ctx := context.Background()
		path := filepath.Join(dir, "reopen.db")

		first, err := repository.NewSQLiteStore(ctx, path, repository.WithSlot("week1"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(first.Save(ctx, sampleCollections()), convey.ShouldBeNil)
		convey.So(first.Close(), convey.ShouldBeNil)

		second, err := repository.NewSQLiteStore(ctx, path, repository.WithSlot("week1"))
		convey.So(err, convey.ShouldBeNil)
		defer second.Close()
		other, err := repository.NewSQLiteStore(ctx, path, repository.WithSlot("week2"))
		convey.So(err, convey.ShouldBeNil)
		defer other.Close()

		convey.Convey("Then the slot survives and slots stay separate", func() {
			got, err := second.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got[model.All], convey.ShouldHaveLength, 3)
			convey.So(second.Count(ctx), convey.ShouldEqual, 3)

			_, err = other.Load(ctx)
			convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
		})
	})
}

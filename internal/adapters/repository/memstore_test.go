package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/fitscore/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given a store holding at most three runs", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithCapacity(3))

		for i := 1; i <= 4; i++ {
			err := store.Put(ctx, repository.Run{
				ID:         fmt.Sprintf("run-%d", i),
				TotalFile:  fmt.Sprintf("total-%d.xlsx", i),
				ClassFiles: []string{fmt.Sprintf("class-%d.xlsx", i)},
			})
			So(err, ShouldBeNil)
		}

		Convey("Then the oldest run is evicted", func() {
			So(store.Count(ctx), ShouldEqual, 3)
			_, err := store.Get(ctx, "run-1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then lookups return the stored run and its files", func() {
			run, err := store.Get(ctx, "run-3")
			So(err, ShouldBeNil)
			So(run.HasFile("total-3.xlsx"), ShouldBeTrue)
			So(run.HasFile("class-3.xlsx"), ShouldBeTrue)
			So(run.HasFile("class-2.xlsx"), ShouldBeFalse)
			So(run.HasFile(""), ShouldBeFalse)
		})

		Convey("Then Recent lists newest first", func() {
			runs, err := store.Recent(ctx, 2)
			So(err, ShouldBeNil)
			So(runs, ShouldHaveLength, 2)
			So(runs[0].ID, ShouldEqual, "run-4")
			So(runs[1].ID, ShouldEqual, "run-3")

			all, err := store.Recent(ctx, 100)
			So(err, ShouldBeNil)
			So(all, ShouldHaveLength, 3)
		})

		Convey("Then invalid limits are rejected", func() {
			_, err := store.Recent(ctx, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("Then putting an existing id replaces it in place", func() {
			So(store.Put(ctx, repository.Run{ID: "run-3", TotalFile: "new.xlsx"}), ShouldBeNil)
			So(store.Count(ctx), ShouldEqual, 3)
			run, _ := store.Get(ctx, "run-3")
			So(run.TotalFile, ShouldEqual, "new.xlsx")
		})

		Convey("Then Clear forgets everything", func() {
			store.Clear(ctx)
			So(store.Count(ctx), ShouldEqual, 0)
			_, err := store.Get(ctx, "run-4")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				_ = store.Put(ctx, repository.Run{ID: fmt.Sprintf("r%d", i)})
			}(i)
			go func() {
				defer wg.Done()
				_, _ = store.Recent(ctx, 5)
			}()
		}
		wg.Wait()

		Convey("Then the store stays within its default bound", func() {
			So(store.Count(ctx), ShouldEqual, 20)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := repository.NewMemoryStore().Put(ctx, repository.Run{ID: "x"})
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

package segment_test

import (
	"errors"
	"testing"

	"github.com/okian/fitscore/internal/domain/model"
	"github.com/okian/fitscore/internal/domain/segment"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given a sheet with a title and two headed blocks", t, func() {
		grid := [][]string{
			{"2024 体测成绩"},
			{"班级", "学号", "性别", "姓名", "引体向上", "1500米"},
			{"一班", "001", "男", "张三", "10", "5:30"},
			{"一班", "002", "未知", "李四", "8", "5:00"},
			{},
			{"班级", "学号", "姓名", " 性别 ", "仰卧起坐", "800米", "1500米"},
			{"二班", "101", "王芳", "女", "40"},
			{"二班", "102", "赵敏", " 女 ", "", "", "6.0"},
		}

		res := segment.Extract(grid)

		Convey("Then both blocks are accepted in order", func() {
			So(res.Rejections, ShouldBeEmpty)
			So(res.Segments, ShouldHaveLength, 2)
			So(res.Segments[0].HeaderRow, ShouldEqual, 1)
			So(res.Segments[1].HeaderRow, ShouldEqual, 5)
			So(res.Segments[1].Index, ShouldEqual, 1)
		})

		Convey("Then each block keeps its own columns", func() {
			first, second := res.Segments[0], res.Segments[1]
			So(first.Has("引体向上"), ShouldBeTrue)
			So(first.Has("仰卧起坐"), ShouldBeFalse)
			So(second.Has("800米"), ShouldBeTrue)
			So(second.Columns["性别"], ShouldEqual, 3)
		})

		Convey("Then only recognized genders are retained", func() {
			So(res.Segments[0].Records, ShouldHaveLength, 1)
			for _, seg := range res.Segments {
				for _, rec := range seg.Records {
					So(rec.Gender, ShouldBeIn, []model.Gender{model.Male, model.Female})
				}
			}
		})

		Convey("Then records carry identity and item cells", func() {
			rec := res.Segments[0].Records[0]
			So(rec.Class, ShouldEqual, "一班")
			So(rec.StudentID, ShouldEqual, "001")
			So(rec.Name, ShouldEqual, "张三")
			So(rec.Row, ShouldEqual, 3)
			So(rec.Events, ShouldResemble, map[model.Event]string{
				model.PullUps: "10",
				model.Run1500: "5:30",
			})
		})

		Convey("Then short rows read as blank cells for present columns", func() {
			rec := res.Segments[1].Records[0]
			v, ok := rec.Value(model.Run800)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "")
			_, ok = rec.Value(model.PullUps)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a block without the class column", t, func() {
		grid := [][]string{
			{"学号", "性别", "姓名"},
			{"001", "男", "张三"},
			{"班级", "性别", "姓名"},
			{"一班", "女", "王芳"},
		}

		res := segment.Extract(grid)

		Convey("Then it is rejected and the other block survives", func() {
			So(res.Segments, ShouldHaveLength, 1)
			So(res.Rejections, ShouldHaveLength, 1)
			So(res.Rejections[0].HeaderRow, ShouldEqual, 0)
			So(errors.Is(res.Rejections[0].Err, segment.ErrMissingColumns), ShouldBeTrue)
			So(res.Rejections[0].Err.Error(), ShouldContainSubstring, "班级")
		})
	})

	Convey("Given a block whose rows have no recognized gender", t, func() {
		grid := [][]string{
			{"班级", "性别", "姓名"},
			{"一班", "M", "张三"},
			{"一班", "", "李四"},
		}

		res := segment.Extract(grid)

		Convey("Then it is rejected", func() {
			So(res.Segments, ShouldBeEmpty)
			So(res.Rejections, ShouldHaveLength, 1)
			So(errors.Is(res.Rejections[0].Err, segment.ErrNoGenderRows), ShouldBeTrue)
		})
	})

	Convey("Given a sheet without any header marker", t, func() {
		res := segment.Extract([][]string{{"班级", "姓名"}, {"一班", "张三"}})

		Convey("Then nothing is extracted", func() {
			So(res.Segments, ShouldBeEmpty)
			So(res.Rejections, ShouldBeEmpty)
		})
	})

	Convey("Given an empty grid", t, func() {
		So(segment.Extract(nil).Segments, ShouldBeEmpty)
		So(segment.HeaderRows(nil), ShouldBeEmpty)
	})
}

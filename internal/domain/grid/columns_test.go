package grid_test

import (
	"testing"

	"github.com/okian/bjorlileika/internal/domain/grid"
	"github.com/okian/bjorlileika/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConstructColumnsFromGames(t *testing.T) {
	Convey("Given three games", t, func() {
		games := []model.Game{{Name: "Darts"}, {Name: "Kubb"}, {Name: "Quiz"}}

		Convey("When constructing columns", func() {
			var emitted []grid.Column
			calls := 0
			grid.ConstructColumnsFromGames(games, func(cols []grid.Column) {
				calls++
				emitted = cols
			})

			Convey("Then player, games and total should be emitted once in order", func() {
				So(calls, ShouldEqual, 1)
				So(emitted, ShouldHaveLength, 1+len(games)+1)
				fields := make([]string, 0, len(emitted))
				for _, c := range emitted {
					fields = append(fields, c.Field)
				}
				So(fields, ShouldResemble, []string{"playerName", "Darts", "Kubb", "Quiz", "total"})
			})

			Convey("And game columns should be editable numbers limited to 1-9", func() {
				c := emitted[1]
				So(c.HeaderName, ShouldEqual, "Darts")
				So(c.Editable, ShouldBeTrue)
				So(c.SingleClickEdit, ShouldBeTrue)
				So(c.CellDataType, ShouldEqual, "number")
				So(*c.CellEditorParams, ShouldResemble, grid.EditorParams{Min: 1, Max: 9, Precision: 0})
			})

			Convey("And the total column should be computed, pinned and sorted ascending", func() {
				c := emitted[len(emitted)-1]
				So(c.HeaderName, ShouldEqual, "Total")
				So(c.Computed, ShouldBeTrue)
				So(c.Sort, ShouldEqual, "asc")
				So(c.Pinned, ShouldEqual, "right")
				So(c.Editable, ShouldBeFalse)
			})
		})

		Convey("When emit is nil", func() {
			Convey("Then nothing should happen", func() {
				So(func() { grid.ConstructColumnsFromGames(games, nil) }, ShouldNotPanic)
			})
		})
	})

	Convey("Given no games", t, func() {
		cols := grid.Columns(nil)

		Convey("Then only the player and total columns should exist", func() {
			So(cols, ShouldHaveLength, 2)
			So(grid.GameFields(cols), ShouldBeEmpty)
		})
	})
}

func TestColumnValue(t *testing.T) {
	Convey("Given a row whose stored total is stale", t, func() {
		row := model.PlayerRow{PlayerName: "Ola", Scores: map[string]float64{"Darts": 3, "Kubb": 4, "Quiz": 0}, Total: 1}
		cols := grid.Columns([]model.Game{{Name: "Darts"}, {Name: "Boccia"}})

		Convey("Then the total column should recompute from the cells", func() {
			So(cols[len(cols)-1].Value(row), ShouldEqual, 12.0)
		})

		Convey("And the player column should render the name", func() {
			So(cols[0].Value(row), ShouldEqual, "Ola")
		})

		Convey("And game columns should render the cell or nil", func() {
			So(cols[1].Value(row), ShouldEqual, 3.0)
			So(cols[2].Value(row), ShouldBeNil)
		})
	})
}

func TestColumnHelpers(t *testing.T) {
	Convey("Given a column set", t, func() {
		cols := grid.Columns([]model.Game{{Name: "Darts"}, {Name: "Kubb"}})

		Convey("Then GameFields should drop the pseudo columns", func() {
			So(grid.GameFields(cols), ShouldResemble, []string{"Darts", "Kubb"})
		})

		Convey("Then HasField should match exactly", func() {
			So(grid.HasField(cols, "Kubb"), ShouldBeTrue)
			So(grid.HasField(cols, "kubb"), ShouldBeFalse)
			So(grid.HasField(cols, "total"), ShouldBeTrue)
		})

		Convey("Then the pseudo fields should be recognised", func() {
			So(grid.IsPseudoField("playerName"), ShouldBeTrue)
			So(grid.IsPseudoField("total"), ShouldBeTrue)
			So(grid.IsPseudoField("Darts"), ShouldBeFalse)
		})
	})
}

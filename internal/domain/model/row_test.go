package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/bjorlileika/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPlayerRow(t *testing.T) {
	Convey("Given an empty player row", t, func() {
		row := model.PlayerRow{PlayerName: "Kari"}

		Convey("When a cell is set", func() {
			row.Set("Kubb", 0)

			Convey("Then the cell should be present even though it is zero", func() {
				v, ok := row.Value("Kubb")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("When the row is cloned", func() {
			row.Set("Darts", 4)
			clone := row.Clone()
			clone.Set("Darts", 5)

			Convey("Then the copies should be independent", func() {
				v, _ := row.Value("Darts")
				So(v, ShouldEqual, 4)
			})
		})
	})
}

func TestPlayerRow_JSON(t *testing.T) {
	Convey("Given a row in grid shape", t, func() {
		row := model.PlayerRow{PlayerName: "Ola", Scores: map[string]float64{"Darts": 3}, Total: 3}

		Convey("When it is encoded", func() {
			raw, err := json.Marshal(row)

			Convey("Then it should be a flat object", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldEqual, `{"Darts":3,"playerName":"Ola","total":3}`)
			})
		})

		Convey("When a flat object with a null cell and a stale total is decoded", func() {
			var decoded model.PlayerRow
			err := json.Unmarshal([]byte(`{"playerName":"Kari","Darts":null,"Kubb":2,"total":99}`), &decoded)

			Convey("Then the null cell should be undefined and the total ignored", func() {
				So(err, ShouldBeNil)
				So(decoded.PlayerName, ShouldEqual, "Kari")
				_, ok := decoded.Value("Darts")
				So(ok, ShouldBeFalse)
				v, _ := decoded.Value("Kubb")
				So(v, ShouldEqual, 2)
				So(decoded.Total, ShouldEqual, 0)
			})
		})

		Convey("When a cell holds a string", func() {
			var decoded model.PlayerRow
			err := json.Unmarshal([]byte(`{"playerName":"Kari","Darts":"three"}`), &decoded)

			Convey("Then decoding should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

package tokenizer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/dfsviz/internal/adapters/tokenizer"
)

func TestTokenizeCSV(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a slate with a BOM, padded headers and quoted salaries", t, func() {
		input := "\ufeff Name ,Position, Salary \n" +
			"Josh Allen,QB,\"8,100\"\n" +
			"\n" +
			"Travis Kelce,TE,\"6,500\"\n"

		table, err := tokenizer.Tokenize(ctx, tokenizer.CSV, strings.NewReader(input))

		convey.Convey("Then headers are trimmed and rows keyed by them", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(table.Headers, convey.ShouldResemble, []string{"Name", "Position", "Salary"})
			convey.So(table.Rows, convey.ShouldHaveLength, 2)
			convey.So(table.Rows[0]["Name"], convey.ShouldEqual, "Josh Allen")
			convey.So(table.Rows[0]["Salary"], convey.ShouldEqual, "8,100")
			convey.So(table.Rows[1]["Position"], convey.ShouldEqual, "TE")
			convey.So(table.Warnings, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given rows with the wrong number of fields", t, func() {
		input := "Name,Team,Salary\nShort,KC\nLong,BUF,7000,extra\n"

		table, err := tokenizer.Tokenize(ctx, tokenizer.CSV, strings.NewReader(input))

		convey.Convey("Then rows are kept and warnings are raised", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(table.Rows, convey.ShouldHaveLength, 2)
			_, hasSalary := table.Rows[0]["Salary"]
			convey.So(hasSalary, convey.ShouldBeFalse)
			convey.So(table.Rows[1]["Salary"], convey.ShouldEqual, "7000")
			convey.So(table.Warnings, convey.ShouldHaveLength, 2)
			convey.So(table.Warnings[0], convey.ShouldContainSubstring, "row 2: too few fields")
			convey.So(table.Warnings[1], convey.ShouldContainSubstring, "row 3: too many fields")
		})
	})

	convey.Convey("Given duplicate headers", t, func() {
		input := "Name,Salary,Salary\nA,5000,9000\n"

		table, err := tokenizer.Tokenize(ctx, tokenizer.CSV, strings.NewReader(input))

		convey.Convey("Then the first column wins", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(table.Rows[0]["Salary"], convey.ShouldEqual, "5000")
			convey.So(table.Warnings[0], convey.ShouldContainSubstring, "duplicate header")
		})
	})

	convey.Convey("Given an empty file", t, func() {
		table, err := tokenizer.Tokenize(ctx, tokenizer.CSV, strings.NewReader(""))

		convey.Convey("Then the table is empty without error", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(table.Rows, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given a reader that fails", t, func() {
		_, err := tokenizer.Tokenize(ctx, tokenizer.CSV, failingReader{})

		convey.Convey("Then it is a structural error", func() {
			convey.So(errors.Is(err, tokenizer.ErrUnreadable), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := tokenizer.Tokenize(cctx, tokenizer.CSV, strings.NewReader("Name\nA\n"))

		convey.Convey("Then tokenizing stops", func() {
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestTokenizeXLSX(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a workbook with a leading blank row", t, func() {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		convey.So(f.SetSheetRow(sheet, "A2", &[]any{"Name", "Position", "Salary", "Leverage"}), convey.ShouldBeNil)
		convey.So(f.SetSheetRow(sheet, "A3", &[]any{"Ja'Marr Chase", "WR", 8700, 4.2}), convey.ShouldBeNil)
		convey.So(f.SetSheetRow(sheet, "A4", &[]any{"Bengals", "DST"}), convey.ShouldBeNil)
		buf, err := f.WriteToBuffer()
		convey.So(err, convey.ShouldBeNil)

		table, err := tokenizer.Tokenize(ctx, tokenizer.XLSX, bytes.NewReader(buf.Bytes()))

		convey.Convey("Then the first sheet is read from its header row", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(table.Headers, convey.ShouldResemble, []string{"Name", "Position", "Salary", "Leverage"})
			convey.So(table.Rows, convey.ShouldHaveLength, 2)
			convey.So(table.Rows[0]["Salary"], convey.ShouldEqual, "8700")
			convey.So(table.Rows[0]["Leverage"], convey.ShouldEqual, "4.2")
			convey.So(table.Rows[1]["Position"], convey.ShouldEqual, "DST")
		})

		convey.Convey("Then short rows are not warned about", func() {
			convey.So(table.Warnings, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given bytes that are not a workbook", t, func() {
		_, err := tokenizer.Tokenize(ctx, tokenizer.XLSX, strings.NewReader("Name,Salary\n"))

		convey.Convey("Then it is a structural error", func() {
			convey.So(errors.Is(err, tokenizer.ErrUnreadable), convey.ShouldBeTrue)
		})
	})
}

func TestFormats(t *testing.T) {
	convey.Convey("Formats are chosen by extension or name", t, func() {
		f, err := tokenizer.FormatFromFilename("week1.CSV")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, tokenizer.CSV)

		f, err = tokenizer.FormatFromFilename("slate.xlsx")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, tokenizer.XLSX)

		_, err = tokenizer.FormatFromFilename("slate.pdf")
		convey.So(errors.Is(err, tokenizer.ErrUnsupportedFormat), convey.ShouldBeTrue)

		f, err = tokenizer.ParseFormat(" XLSX ")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, tokenizer.XLSX)

		_, err = tokenizer.Tokenize(context.Background(), tokenizer.Format("json"), strings.NewReader(""))
		convey.So(errors.Is(err, tokenizer.ErrUnsupportedFormat), convey.ShouldBeTrue)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

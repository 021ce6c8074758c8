package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Season Code":       "season_code",
		"season-code":       "season_code",
		"  CODE  ":          "code",
		"Goods Name (EN)":   "goods_name_en",
		"customs_duty_rate": "customs_duty_rate",
		"":                  "",
		"a":                 "a",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), "input %q", in)
	}
}

func TestReadFromBytes_CSV(t *testing.T) {
	t.Run("parses headers and rows", func(t *testing.T) {
		data := []byte("Code,Description\n1,Live animals\n2,Meat\n")

		table, err := ReadFromBytes("seasons.csv", data)
		require.NoError(t, err)

		assert.Equal(t, []string{"code", "description"}, table.Headers)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "1", table.Rows[0].Get("code"))
		assert.Equal(t, "Meat", table.Rows[1].Get("description"))
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("code\n1\n")...)

		table, err := ReadFromBytes("seasons.csv", data)
		require.NoError(t, err)
		assert.Equal(t, []string{"code"}, table.Headers)
		require.Len(t, table.Rows, 1)
	})

	t.Run("drops blank rows and pads short ones", func(t *testing.T) {
		data := []byte("code,description\n1,Live animals\n,\n2\n")

		table, err := ReadFromBytes("seasons.csv", data)
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "2", table.Rows[1].Get("code"))
		assert.Equal(t, "", table.Rows[1].Get("description"))
	})

	t.Run("empty file yields empty table", func(t *testing.T) {
		table, err := ReadFromBytes("seasons.csv", nil)
		require.NoError(t, err)
		assert.Empty(t, table.Headers)
		assert.Empty(t, table.Rows)
	})
}

func TestReadFromBytes_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Code", "Goods Name FA"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"01012100", "اسب"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"01012900", "سایر"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ReadFromBytes("codes.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "goods_name_fa"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "01012100", table.Rows[0].Get("code"))
	assert.Equal(t, "سایر", table.Rows[1].Get("goods_name_fa"))
}

func TestReadFromBytes_UnsupportedType(t *testing.T) {
	_, err := ReadFromBytes("data.pdf", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = ReadFromBytes("data", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestTable_MissingHeaders(t *testing.T) {
	table := &Table{Headers: []string{"code", "description"}}

	assert.Empty(t, table.MissingHeaders([]string{"code"}))
	assert.Equal(t, []string{"goods_name_fa"}, table.MissingHeaders([]string{"code", "goods_name_fa"}))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "abc", CleanString("  abc  "))
	assert.Equal(t, "", CleanString("   "))
}

func TestIntOrNil(t *testing.T) {
	t.Run("parses integers", func(t *testing.T) {
		v := IntOrNil("12")
		require.NotNil(t, v)
		assert.Equal(t, 12, *v)
	})

	t.Run("tolerates float renderings", func(t *testing.T) {
		v := IntOrNil("12.0")
		require.NotNil(t, v)
		assert.Equal(t, 12, *v)
	})

	t.Run("nil for blanks and garbage", func(t *testing.T) {
		assert.Nil(t, IntOrNil(""))
		assert.Nil(t, IntOrNil("  "))
		assert.Nil(t, IntOrNil("abc"))
	})
}

package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInventoryCSV_Basic(t *testing.T) {
	csv := "name,description,price,stock,image_url\n" +
		"Rice 5kg,Premium rice,250.00,40,/img/rice.png\n" +
		"Miso,,120.50,15\n"

	rows, err := ParseInventoryCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, "Rice 5kg", rows[0].Name)
	assert.Equal(t, 250.00, rows[0].Price)
	assert.Equal(t, int64(40), rows[0].Stock)
	assert.Equal(t, "/img/rice.png", rows[0].ImageURL)

	//image_url列は省略可
	assert.Equal(t, "Miso", rows[1].Name)
	assert.Equal(t, "", rows[1].ImageURL)
}

// 4列未満の行は読み飛ばす
func TestParseInventoryCSV_SkipsShortRows(t *testing.T) {
	csv := "name,description,price,stock\n" +
		"Rice,desc,100,5\n" +
		"broken,row\n" +
		"Miso,desc,200,3\n"

	rows, err := ParseInventoryCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Rice", rows[0].Name)
	assert.Equal(t, "Miso", rows[1].Name)
}

// 数値でないprice/stockは0扱い（行ごと落とさない）
func TestParseInventoryCSV_NonNumericBecomesZero(t *testing.T) {
	csv := "name,description,price,stock\n" +
		"Rice,desc,abc,xyz\n"

	rows, err := ParseInventoryCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Price)
	assert.Equal(t, int64(0), rows[0].Stock)
}

func TestParseInventoryCSV_EmptyFile(t *testing.T) {
	rows, err := ParseInventoryCSV(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestParseInventoryCSV_HeaderOnly(t *testing.T) {
	rows, err := ParseInventoryCSV(strings.NewReader("name,description,price,stock\n"))
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}

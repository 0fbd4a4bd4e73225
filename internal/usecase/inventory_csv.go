package usecase

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// CSV 1行分の商品データ。
type InventoryRow struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
	ImageURL    string
}

// ParseInventoryCSVは name,description,price,stock[,image_url] 形式のCSVを読む。
// 先頭行はヘッダとして読み飛ばし、4列未満の行は無視する。
// price/stockが数値でなければ0として扱う（取り込み失敗にはしない）。
func ParseInventoryCSV(r io.Reader) ([]InventoryRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	//ヘッダ行
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return []InventoryRow{}, nil
		}
		return nil, err
	}

	rows := []InventoryRow{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 4 {
			continue
		}

		price, _ := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		stock, _ := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)

		row := InventoryRow{
			Name:        strings.TrimSpace(rec[0]),
			Description: strings.TrimSpace(rec[1]),
			Price:       price,
			Stock:       stock,
		}
		if len(rec) >= 5 {
			row.ImageURL = strings.TrimSpace(rec[4])
		}

		rows = append(rows, row)
	}

	return rows, nil
}

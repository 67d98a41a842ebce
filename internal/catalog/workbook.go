package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stockpilot/wms-backend/pkg/config"
	"github.com/stockpilot/wms-backend/pkg/db/models"
	"github.com/stockpilot/wms-backend/pkg/enums"
)

const maxComboComponents = 14

// InventoryItem is one opening-stock row from the master workbook.
type InventoryItem struct {
	MSKU         string
	ProductName  string
	OpeningStock int
	BufferStock  int
}

// WorkbookData is the parsed content of the master workbook.
type WorkbookData struct {
	Mappings  []models.SKUMapping
	Combos    []models.ComboProduct
	Inventory []InventoryItem
}

// LoadWorkbook reads the master workbook's mapping, combo and inventory
// sheets. The inventory sheet carries its real headers in the first data
// row, as the source workbook does, so the loader shifts by one row there.
func LoadWorkbook(path string, cfg config.CatalogConfig) (*WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %q: %w", path, err)
	}
	defer f.Close()

	data := &WorkbookData{}

	if data.Mappings, err = loadMappingSheet(f, cfg.MappingSheet); err != nil {
		return nil, err
	}
	if data.Combos, err = loadComboSheet(f, cfg.ComboSheet); err != nil {
		return nil, err
	}
	if data.Inventory, err = loadInventorySheet(f, cfg.InventorySheet); err != nil {
		return nil, err
	}

	return data, nil
}

func loadMappingSheet(f *excelize.File, sheet string) ([]models.SKUMapping, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	skuCol := findColumn(headers, "sku")
	mskuCol := findColumn(headers, "msku")
	platformCol := findColumn(headers, "platform")
	if skuCol < 0 || mskuCol < 0 {
		return nil, fmt.Errorf("sheet %q missing sku/msku columns", sheet)
	}

	var mappings []models.SKUMapping
	for _, row := range rows[1:] {
		sku := cellAt(row, skuCol)
		msku := cellAt(row, mskuCol)
		if sku == "" || msku == "" {
			continue
		}
		platform := enums.PlatformUnknown
		if platformCol >= 0 {
			if p, err := enums.ParsePlatform(cellAt(row, platformCol)); err == nil {
				platform = p
			}
		}
		mappings = append(mappings, models.SKUMapping{
			SKU:      sku,
			MSKU:     msku,
			Platform: platform,
		})
	}
	return mappings, nil
}

func loadComboSheet(f *excelize.File, sheet string) ([]models.ComboProduct, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	comboCol := findColumn(headers, "combo")
	if comboCol < 0 {
		return nil, fmt.Errorf("sheet %q missing combo column", sheet)
	}

	componentCols := make([]int, 0, maxComboComponents)
	for i := 1; i <= maxComboComponents; i++ {
		if col := findColumn(headers, fmt.Sprintf("sku%d", i)); col >= 0 {
			componentCols = append(componentCols, col)
		}
	}

	var combos []models.ComboProduct
	for _, row := range rows[1:] {
		comboSKU := cellAt(row, comboCol)
		if comboSKU == "" {
			continue
		}
		combo := models.ComboProduct{ComboSKU: comboSKU}
		for pos, col := range componentCols {
			msku := cellAt(row, col)
			if msku == "" {
				continue
			}
			combo.Components = append(combo.Components, models.ComboComponent{
				Position:    pos + 1,
				ProductMSKU: msku,
				Quantity:    1,
			})
		}
		if len(combo.Components) > 0 {
			combos = append(combos, combo)
		}
	}
	return combos, nil
}

func loadInventorySheet(f *excelize.File, sheet string) ([]InventoryItem, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	// First row is a decorative banner; real headers sit in the first data row.
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[1]
	mskuCol := findColumn(headers, "msku")
	nameCol := findColumn(headers, "product name")
	stockCol := findColumn(headers, "opening stock")
	bufferCol := findColumn(headers, "buffer stock")
	if mskuCol < 0 {
		mskuCol = findColumnContaining(headers, "msku")
	}
	if stockCol < 0 {
		stockCol = findColumnContaining(headers, "stock")
	}
	if mskuCol < 0 || stockCol < 0 {
		return nil, fmt.Errorf("sheet %q missing msku/stock columns", sheet)
	}

	var items []InventoryItem
	for _, row := range rows[2:] {
		msku := cellAt(row, mskuCol)
		if msku == "" {
			continue
		}
		item := InventoryItem{
			MSKU:         msku,
			OpeningStock: cellInt(row, stockCol),
		}
		if nameCol >= 0 {
			item.ProductName = cellAt(row, nameCol)
		}
		if bufferCol >= 0 {
			item.BufferStock = cellInt(row, bufferCol)
		}
		items = append(items, item)
	}
	return items, nil
}

func findColumn(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func findColumnContaining(headers []string, fragment string) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), fragment) {
			return i
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func cellInt(row []string, col int) int {
	raw := cellAt(row, col)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// excel sometimes serializes integers as floats
	if fv, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(fv)
	}
	return 0
}

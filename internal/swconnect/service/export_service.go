package service

import (
	"context"
	"fmt"
	"time"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService 物料台账导出
type ExportService struct {
	itemRepo *repository.ItemRepository
	fileRepo *repository.FileRepository
	now      Clock
}

// NewExportService 创建导出服务
func NewExportService(itemRepo *repository.ItemRepository, fileRepo *repository.FileRepository) *ExportService {
	return &ExportService{itemRepo: itemRepo, fileRepo: fileRepo, now: time.Now}
}

var itemExportHeaders = []string{
	"Item Code", "Item Name", "Item Group", "Stock UOM",
	"Department", "Make", "Revision", "Drawing",
}

// ItemRegisterSheet 导出的工作表名
const ItemRegisterSheet = "Items"

// ExportItems 导出全部物料为xlsx，每个物料带上当前图纸文件名
func (s *ExportService) ExportItems(ctx context.Context) (*excelize.File, string, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list items: %w", err)
	}

	codes := make([]string, len(items))
	for i, item := range items {
		codes[i] = item.ItemCode
	}
	files, err := s.fileRepo.ListAttachedToNames(ctx, entity.DoctypeItem, codes)
	if err != nil {
		return nil, "", fmt.Errorf("list drawings: %w", err)
	}
	// 按创建时间升序，后出现的覆盖前面的
	drawings := make(map[string]string, len(files))
	for _, f := range files {
		drawings[f.AttachedToName] = f.FileName
	}

	f := excelize.NewFile()
	sheet := ItemRegisterSheet
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range itemExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ItemCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.ItemGroup)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.StockUOM)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Department)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Make)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), displayRevision(item.Revision))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), drawings[item.ItemCode])
	}

	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	colWidths := []float64{18, 30, 18, 10, 24, 16, 10, 36}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("Items_%s.xlsx", s.now().Format("20060102"))
	return f, filename, nil
}

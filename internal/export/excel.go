package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/crmcustoms/megaplan-expenses/models"
)

const sheetName = "Расходы"

// Excel собирает XLSX-книгу с теми же колонками, что и CSV-выгрузка.
// Числа пишутся числами, чтобы в Excel сразу работали фильтры и суммы.
func Excel(expenses []models.Expense, total float64, parentDealID, parentDealName string) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("создание листа: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("удаление листа по умолчанию: %w", err)
	}

	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("запись заголовка: %w", err)
		}
	}

	for i, exp := range expenses {
		row := i + 2
		values := []any{
			parentDealID,
			exp.Status,
			exp.Category,
			exp.Brand,
			exp.Contractor,
			exp.PaymentType,
			exp.Manager,
			exp.Amount,
			exp.AdditionalCost,
			exp.FinalCost,
			exp.FairCost,
			exp.Description,
			exp.DealLink,
			exp.Creator,
			exp.Currency,
			parentDealName,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("запись строки %d: %w", row, err)
			}
		}
	}

	totalRow := len(expenses) + 2
	labelCell, _ := excelize.CoordinatesToCellName(totalLabelColumn+1, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(totalValueColumn+1, totalRow)
	if err := f.SetCellValue(sheetName, labelCell, "ИТОГО:"); err != nil {
		return nil, fmt.Errorf("запись итоговой строки: %w", err)
	}
	if err := f.SetCellValue(sheetName, valueCell, total); err != nil {
		return nil, fmt.Errorf("запись итоговой строки: %w", err)
	}

	return f, nil
}

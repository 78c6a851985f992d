// Package xlsxexport renders an ownership summary as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"runsheet/internal/csvexport"
	"runsheet/internal/domain"
)

const (
	OwnersSheet     = "Owners"
	UnresolvedSheet = "Unresolved Transfers"
)

var unresolvedColumns = []string{
	"Grantor",
	"Grantee",
	"Surface %",
	"Mineral %",
	"Transfer Type",
	"Reserved Mineral %",
	"Document",
	"Row",
}

// Write renders summary into a workbook and writes it to w.
func Write(w io.Writer, summary *domain.OwnershipSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), OwnersSheet); err != nil {
		return fmt.Errorf("xlsxexport.Write: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport.Write style: %w", err)
	}

	if err := writeOwners(f, summary, bold); err != nil {
		return fmt.Errorf("xlsxexport.Write owners: %w", err)
	}
	if err := writeUnresolved(f, summary.UnresolvedTransfers, bold); err != nil {
		return fmt.Errorf("xlsxexport.Write unresolved: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport.Write: %w", err)
	}
	return nil
}

func writeOwners(f *excelize.File, summary *domain.OwnershipSummary, headerStyle int) error {
	if err := setRow(f, OwnersSheet, 1, toAny(csvexport.Columns)); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(csvexport.Columns), 1)
	if err := f.SetCellStyle(OwnersSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, o := range summary.Owners {
		aliases := make([]string, 0, len(o.Aliases))
		for _, a := range o.Aliases {
			if a != o.Name {
				aliases = append(aliases, a)
			}
		}
		values := []any{
			o.Name,
			strings.Join(aliases, "; "),
			o.SurfacePercentage,
			o.MineralPercentage,
			o.NetSurfaceAcres,
			o.NetMineralAcres,
			string(o.CurrentLeaseStatus),
			o.AcquisitionDocument,
		}
		if err := setRow(f, OwnersSheet, row, values); err != nil {
			return err
		}
		row++
	}

	totals := []any{
		"TOTAL",
		"",
		summary.TotalSurfacePercentage,
		summary.TotalMineralPercentage,
		summary.TotalSurfacePercentage / 100 * summary.TotalAcres,
		summary.TotalMineralPercentage / 100 * summary.TotalAcres,
	}
	if err := setRow(f, OwnersSheet, row, totals); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(len(totals), row)
	if err := f.SetCellStyle(OwnersSheet, first, end, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(OwnersSheet, "A", "B", 36)
}

func writeUnresolved(f *excelize.File, pending []domain.PendingTransfer, headerStyle int) error {
	if _, err := f.NewSheet(UnresolvedSheet); err != nil {
		return err
	}
	if err := setRow(f, UnresolvedSheet, 1, toAny(unresolvedColumns)); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(unresolvedColumns), 1)
	if err := f.SetCellStyle(UnresolvedSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, p := range pending {
		values := []any{
			p.GrantorName,
			p.GranteeName,
			p.SurfacePercentage,
			p.MineralPercentage,
			string(p.TransferType),
			p.ReservedMineralPercentage,
			p.DocumentReference,
			p.RowIndex,
		}
		if err := setRow(f, UnresolvedSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

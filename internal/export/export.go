// Package export renders filtered directory and amenity lists as CSV or
// Excel. Callers pass the full filtered slice, not a single page.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"society-console-backend/internal/domain"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ParseFormat accepts csv (the default), excel or xlsx, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (f Format) Extension() string {
	if f == FormatExcel {
		return ".xlsx"
	}
	return ".csv"
}

// Table is a header row plus data rows in the same column order.
type Table struct {
	Header []string
	Rows   [][]string
}

// Write renders t to w. sheet names the worksheet for Excel output and is
// ignored for CSV.
func Write(w io.Writer, format Format, sheet string, t Table) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, t)
	case FormatExcel:
		return writeExcel(w, sheet, t)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func writeExcel(w io.Writer, sheet string, t Table) error {
	if sheet == "" {
		sheet = "Export"
	}
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

var entryHeader = []string{
	"ID", "Type", "Name", "Email", "Phone", "Address", "Status", "Active", "Date Joined",
	"Role", "Unit Number", "Committee Member", "Company", "Rating", "Employee ID", "Department", "Shift",
}

// EntryTable flattens entries into one row each. Columns that do not apply
// to an entry's variant are left empty.
func EntryTable(entries []domain.Entry) Table {
	t := Table{Header: entryHeader, Rows: make([][]string, 0, len(entries))}
	for _, e := range entries {
		row := entryRow{}
		domain.Visit(e, &row)
		t.Rows = append(t.Rows, row.cells)
	}
	return t
}

type entryRow struct {
	cells []string
}

func (r *entryRow) base(b domain.BaseEntry, t domain.EntryType) {
	r.cells = []string{
		b.ID, string(t), b.Name, b.Email, b.Phone, b.Address, string(b.Status),
		strconv.FormatBool(b.IsActive), b.DateJoined.Format("2006-01-02"),
	}
}

func (r *entryRow) VisitMember(b domain.BaseEntry, d domain.MemberDetails) {
	r.base(b, domain.EntryTypeMember)
	r.cells = append(r.cells, string(d.Role), d.UnitNumber, strconv.FormatBool(d.IsCommitteeMember), "", "", "", "", "")
}

func (r *entryRow) VisitVendor(b domain.BaseEntry, d domain.VendorDetails) {
	r.base(b, domain.EntryTypeVendor)
	r.cells = append(r.cells, d.VendorType, "", "", d.CompanyName, strconv.FormatFloat(d.Rating, 'f', 1, 64), "", "", "")
}

func (r *entryRow) VisitStaff(b domain.BaseEntry, d domain.StaffDetails) {
	r.base(b, domain.EntryTypeStaff)
	r.cells = append(r.cells, d.Role, "", "", "", "", d.EmployeeID, d.Department, d.Shift)
}

func (r *entryRow) VisitSecurity(b domain.BaseEntry, d domain.SecurityDetails) {
	r.base(b, domain.EntryTypeSecurity)
	r.cells = append(r.cells, d.Role, "", "", "", "", d.EmployeeID, d.Department, d.Shift)
}

var amenityHeader = []string{
	"ID", "Name", "Category", "Location", "Capacity", "Availability", "Booking",
	"Active", "Daily Usage", "Revenue", "Average Rating", "Maintenance Overdue",
}

func AmenityTable(amenities []domain.Amenity) Table {
	t := Table{Header: amenityHeader, Rows: make([][]string, 0, len(amenities))}
	for _, a := range amenities {
		t.Rows = append(t.Rows, []string{
			a.ID,
			a.Name,
			string(a.Category),
			a.Location,
			strconv.Itoa(a.Capacity),
			string(a.AvailabilityStatus),
			string(a.BookingStatus),
			strconv.FormatBool(a.IsActive),
			strconv.Itoa(a.Usage.Daily),
			a.Revenue.StringFixed(2),
			strconv.FormatFloat(a.AverageRating(), 'f', 1, 64),
			strconv.FormatBool(a.Maintenance.IsOverdue),
		})
	}
	return t
}

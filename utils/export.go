package utils

import (
	"fmt"
	"io"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/tealeg/xlsx"
)

var orderExportHeaders = []string{
	"OrderID", "CreatedAt", "Username", "Status", "Address",
	"ProductID", "ProductName", "Quantity", "PriceAtBooking", "OrderTotal", "PaymentSlip",
}

// WriteOrdersXLSX writes one row per order item; orders without items get a
// single row with the item columns left empty.
func WriteOrdersXLSX(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range orderExportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		username := ""
		if o.User != nil {
			username = o.User.Username
		}
		addOrderCells := func(row *xlsx.Row) {
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(username)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.Address)
		}

		if len(o.OrderItems) == 0 {
			row := sheet.AddRow()
			addOrderCells(row)
			for i := 0; i < 4; i++ {
				row.AddCell()
			}
			row.AddCell().SetValue(o.TotalPrice.StringFixed(2))
			row.AddCell().SetValue(o.PaymentSlip)
			continue
		}

		for _, item := range o.OrderItems {
			row := sheet.AddRow()
			addOrderCells(row)
			row.AddCell().SetValue(item.ProductID)
			row.AddCell().SetValue(item.Product.Name)
			row.AddCell().SetValue(item.Quantity)
			row.AddCell().SetValue(item.PriceAtBooking.StringFixed(2))
			row.AddCell().SetValue(o.TotalPrice.StringFixed(2))
			row.AddCell().SetValue(o.PaymentSlip)
		}
	}

	return file.Write(w)
}

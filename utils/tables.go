package utils

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/drip-capital/drippay/common"
)

func PrintFaucetSummary(transactionCount int, totalIncoming string, totalOutgoing string, header string) {
	summaryTable := table.NewWriter()
	summaryTable.SetStyle(table.StyleLight)
	summaryTable.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}, {Number: 2, Align: text.AlignRight}})
	summaryTable.SetOutputMirror(os.Stdout)
	summaryTable.SetTitle(header)
	summaryTable.Style().Title.Align = text.AlignCenter
	summaryTable.AppendRow(table.Row{"Total Incoming", totalIncoming}, table.RowConfig{AutoMerge: false})
	summaryTable.AppendRow(table.Row{"Total Outgoing", totalOutgoing}, table.RowConfig{AutoMerge: false})
	summaryTable.AppendSeparator()
	summaryTable.AppendRow(table.Row{"Transactions", transactionCount}, table.RowConfig{AutoMerge: false})
	summaryTable.Render()
}

func PrintDisbursementReports(reports []common.DisbursementReport, header string) {
	printCliTable(lo.Map(reports, func(report common.DisbursementReport, _ int) ICliPrintable {
		return &report
	}), header)
}

func printCliTable(items []ICliPrintable, header string) {
	if len(items) == 0 {
		return
	}
	itemsTable := table.NewWriter()
	itemsTable.SetStyle(table.StyleLight)
	itemsTable.SetOutputMirror(os.Stdout)
	itemsTable.SetTitle(header)
	itemsTable.Style().Title.Align = text.AlignCenter
	itemsTable.AppendHeader(columnsAsRow(items[0].GetHeaders()), table.RowConfig{AutoMerge: true})
	for _, item := range items {
		itemsTable.AppendRow(columnsAsRow(item.ToTableRow()), table.RowConfig{AutoMerge: false})
	}
	itemsTable.Render()
}

func columnsAsRow(columns []string) table.Row {
	return lo.Map(columns, func(column string, _ int) interface{} {
		return column
	})
}

package accounts

import "github.com/ledgerbook/ledgerbook/internal/model"

// OpeningBalanceAccountID is the equity account that offsets opening balances
// in the default chart.
const OpeningBalanceAccountID = "equity_opening"

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "transport_company":
		return transportChart()
	default:
		return transportChart()
	}
}

func leaf(id, code, name string, t model.AccountType) model.Account {
	return model.Account{ID: id, Code: code, Name: name, Type: t}
}

func group(id, code, name string, t model.AccountType, children ...model.Account) model.Account {
	return model.Account{ID: id, Code: code, Name: name, Type: t, Children: children}
}

func transportChart() []model.Account {
	const (
		asset     = model.AccountTypeAsset
		liability = model.AccountTypeLiability
		equity    = model.AccountTypeEquity
		revenue   = model.AccountTypeRevenue
		expense   = model.AccountTypeExpense
	)
	return []model.Account{
		group("1", "1000", "Assets", asset,
			group("1-1", "1100", "Current Assets", asset,
				leaf("1-1-1", "1110", "Cash on Hand", asset),
				leaf("1-1-2", "1120", "Banks", asset),
				leaf("1-1-3", "1130", "Accounts Receivable", asset),
				group("1-1-4", "1140", "Inventory", asset,
					leaf("1-1-4-1", "1150", "Inventory - Spare Parts", asset),
					leaf("1-1-4-2", "1160", "Inventory - Fuel", asset),
					leaf("1-1-4-3", "1170", "Inventory - Tires", asset),
					leaf("1-1-4-4", "1180", "Inventory - Lubricants", asset),
					leaf("1-1-4-5", "1190", "Inventory - Tools", asset),
				),
			),
			group("1-2", "1200", "Fixed Assets", asset,
				leaf("1-2-1", "1210", "Vehicles", asset),
				leaf("1-2-2", "1220", "Buildings", asset),
				leaf("1-2-3", "1230", "Equipment", asset),
				leaf("1-2-4", "1240", "Accumulated Depreciation", asset),
			),
		),
		group("2", "2000", "Liabilities", liability,
			group("2-1", "2100", "Current Liabilities", liability,
				leaf("2-1-1", "2110", "Accounts Payable", liability),
				leaf("2-1-2", "2120", "Accrued Expenses", liability),
				leaf("2-1-3", "2130", "Short-term Loans", liability),
			),
			group("2-2", "2200", "Long-term Liabilities", liability,
				leaf("2-2-1", "2210", "Long-term Loans", liability),
			),
		),
		group("3", "3000", "Equity", equity,
			leaf("3-1", "3100", "Capital", equity),
			leaf("3-2", "3200", "Retained Earnings", equity),
			model.Account{
				ID:          OpeningBalanceAccountID,
				Code:        "3300",
				Name:        "Opening Balance Equity",
				Type:        equity,
				Description: "Offsets opening balances of new accounts",
			},
		),
		group("4", "4000", "Revenue", revenue,
			leaf("4-1", "4100", "Transport Services Revenue", revenue),
			leaf("4-2", "4200", "Vehicle Rental Revenue", revenue),
			leaf("4-3", "4300", "Other Revenue", revenue),
		),
		group("5", "5000", "Expenses", expense,
			group("5-1", "5100", "Operating Expenses", expense,
				leaf("5-1-1", "5110", "Transport Expenses", expense),
				leaf("5-1-2", "5120", "Insurance Expenses", expense),
				leaf("5-1-3", "5130", "Maintenance Expenses", expense),
				leaf("5-1-4", "5140", "Fuel Expenses", expense),
				leaf("5-1-5", "5150", "Parts Cost", expense),
			),
			group("5-2", "5200", "Administrative Expenses", expense,
				leaf("5-2-1", "5210", "Staff Salaries", expense),
				leaf("5-2-2", "5220", "Office Rent", expense),
				leaf("5-2-3", "5230", "Office Supplies", expense),
			),
			leaf("5-3", "5300", "Drivers Salaries", expense),
			leaf("5-4", "5400", "Vehicle Rental Expenses", expense),
		),
	}
}

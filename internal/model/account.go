package model

// AccountType is the root component of a beancount account name.
type AccountType string

const (
	AccountTypeAssets      AccountType = "Assets"
	AccountTypeLiabilities AccountType = "Liabilities"
	AccountTypeEquity      AccountType = "Equity"
	AccountTypeIncome      AccountType = "Income"
	AccountTypeExpenses    AccountType = "Expenses"
)

// AccountTypes lists the valid account roots.
var AccountTypes = []AccountType{
	AccountTypeAssets,
	AccountTypeLiabilities,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpenses,
}

// PlaceholderAccount receives the counter-posting of every imported
// transaction until someone categorizes it.
const PlaceholderAccount = "Expenses:FIXME"

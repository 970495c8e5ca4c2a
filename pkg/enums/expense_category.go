package enums

// ExpenseCategory labels ledger entries. Manual expenses may carry free
// text categories; these are the ones the system itself emits or the
// report breakdown recognizes.
type ExpenseCategory string

const (
	ExpenseCategoryParts     ExpenseCategory = "parts"
	ExpenseCategoryLabor     ExpenseCategory = "labor"
	ExpenseCategoryRent      ExpenseCategory = "rent"
	ExpenseCategoryUtilities ExpenseCategory = "utilities"
	ExpenseCategorySupplies  ExpenseCategory = "supplies"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// String implements fmt.Stringer.
func (e ExpenseCategory) String() string {
	return string(e)
}

// Normalize maps empty or unknown category text onto "other".
func Normalize(category string) string {
	switch ExpenseCategory(category) {
	case ExpenseCategoryParts, ExpenseCategoryLabor, ExpenseCategoryRent,
		ExpenseCategoryUtilities, ExpenseCategorySupplies, ExpenseCategoryOther:
		return category
	}
	return string(ExpenseCategoryOther)
}

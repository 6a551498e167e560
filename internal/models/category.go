package models

// ExpenseCategory tags every transaction on an account.
type ExpenseCategory string

const (
	// qualified expenses
	CategoryDoctorVisit  ExpenseCategory = "doctor_visit"
	CategoryPrescription ExpenseCategory = "prescription"

	// not qualified expenses
	CategoryGroceries   ExpenseCategory = "groceries"
	CategoryRestaurants ExpenseCategory = "restaurants"

	// CategoryDeposit is written by the system for deposits only; it is
	// never a valid purchase category.
	CategoryDeposit ExpenseCategory = "deposit"
)

// AllCategories lists the closed category set in display order.
var AllCategories = []ExpenseCategory{
	CategoryDoctorVisit,
	CategoryPrescription,
	CategoryGroceries,
	CategoryRestaurants,
	CategoryDeposit,
}

// qualified holds the HSA-qualified expense categories.
var qualified = map[ExpenseCategory]bool{
	CategoryDoctorVisit:  true,
	CategoryPrescription: true,
}

// Qualified reports whether purchases in this category are reimbursable
// from HSA funds. "deposit" and unknown categories are not qualified.
func (c ExpenseCategory) Qualified() bool {
	return qualified[c]
}

// Purchasable reports whether a user may select this category for a
// purchase. It excludes "deposit" and anything outside the closed set.
func (c ExpenseCategory) Purchasable() bool {
	switch c {
	case CategoryDoctorVisit, CategoryPrescription, CategoryGroceries, CategoryRestaurants:
		return true
	}
	return false
}

package suggest

// expenseTaxonomy maps each expense parent category to its subcategories.
// Subcategory substring matching during suggestion scans these lists.
var expenseTaxonomy = map[string][]string{
	"Food & Dining": {
		"Groceries", "Restaurants", "Fast Food", "Coffee Shops", "Delivery", "Alcohol & Bars",
	},
	"Shopping": {
		"Clothing", "Electronics", "Home Goods", "Online Marketplaces", "Hobbies", "Gifts",
	},
	"Transportation": {
		"Gas & Fuel", "Public Transit", "Rideshare", "Parking", "Tolls", "Auto Maintenance",
	},
	"Housing": {
		"Rent", "Mortgage", "Home Improvement", "Furnishings", "Lawn & Garden",
	},
	"Utilities": {
		"Electric", "Water", "Internet", "Mobile Phone", "Trash & Recycling", "Streaming Services",
	},
	"Health & Fitness": {
		"Pharmacy", "Doctor", "Dentist", "Gym", "Vision", "Therapy",
	},
	"Entertainment": {
		"Movies", "Music", "Games", "Events", "Books",
	},
	"Travel": {
		"Flights", "Hotels", "Rental Cars", "Vacation",
	},
	"Personal Care": {
		"Hair", "Spa & Massage", "Laundry",
	},
	"Education": {
		"Tuition", "Student Loans", "Books & Supplies", "Courses",
	},
	"Fees & Charges": {
		"Bank Fees", "Late Fees", "Service Fees", "Finance Charges",
	},
	"Insurance": {
		"Auto Insurance", "Health Insurance", "Home Insurance", "Life Insurance",
	},
}

// incomeCategories are parent categories that never require a subcategory.
var incomeCategories = map[string]bool{
	"Income":        true,
	"Paycheck":      true,
	"Interest":      true,
	"Refunds":       true,
	"Transfer":      true,
	"Reimbursement": true,
}

// IsExpenseCategory reports whether the parent belongs to the expense
// taxonomy.
func IsExpenseCategory(parent string) bool {
	_, ok := expenseTaxonomy[parent]
	return ok
}

// IsIncomeCategory reports whether the parent is an income category, which
// never requires a subcategory.
func IsIncomeCategory(parent string) bool {
	return incomeCategories[parent]
}

// Subcategories returns the subcategory list for an expense parent, or nil.
func Subcategories(parent string) []string {
	return expenseTaxonomy[parent]
}

// keywordRule maps trigger substrings to a category suggestion. Rules are
// evaluated in order; the first keyword hit wins.
type keywordRule struct {
	keywords   []string
	parent     string
	sub        string
	txType     string
	confidence float64
}

var keywordRules = []keywordRule{
	{[]string{"grocery", "supermarket", "market", "wholefds", "kroger", "aldi", "wegmans", "safeway", "publix"},
		"Food & Dining", "Groceries", TypeHintExpense, 0.8},
	{[]string{"restaurant", "grill", "bistro", "cantina", "taqueria", "sushi", "pizzeria"},
		"Food & Dining", "Restaurants", TypeHintExpense, 0.75},
	{[]string{"coffee", "espresso", "starbucks", "dunkin"},
		"Food & Dining", "Coffee Shops", TypeHintExpense, 0.8},
	{[]string{"mcdonald", "burger", "wendy", "taco bell", "chick-fil-a", "chipotle", "kfc", "popeyes"},
		"Food & Dining", "Fast Food", TypeHintExpense, 0.8},
	{[]string{"doordash", "grubhub", "uber eats", "postmates", "instacart"},
		"Food & Dining", "Delivery", TypeHintExpense, 0.8},
	{[]string{"brewery", "taproom", "liquor", "wine"},
		"Food & Dining", "Alcohol & Bars", TypeHintExpense, 0.7},
	{[]string{"gas", "fuel", "shell", "exxon", "chevron", "bp ", "sunoco", "marathon petro"},
		"Transportation", "Gas & Fuel", TypeHintExpense, 0.75},
	{[]string{"uber", "lyft"},
		"Transportation", "Rideshare", TypeHintExpense, 0.75},
	{[]string{"parking", "parkmobile"},
		"Transportation", "Parking", TypeHintExpense, 0.8},
	{[]string{"toll", "e-zpass", "ezpass"},
		"Transportation", "Tolls", TypeHintExpense, 0.8},
	{[]string{"transit", "metro", "amtrak", "mta "},
		"Transportation", "Public Transit", TypeHintExpense, 0.75},
	{[]string{"netflix", "hulu", "spotify", "disney+", "hbo", "paramount+", "youtube premium"},
		"Utilities", "Streaming Services", TypeHintExpense, 0.85},
	{[]string{"electric", "power & light", "energy", "duke energy"},
		"Utilities", "Electric", TypeHintExpense, 0.7},
	{[]string{"water utility", "water dept", "water bill"},
		"Utilities", "Water", TypeHintExpense, 0.7},
	{[]string{"internet", "comcast", "xfinity", "spectrum", "fios"},
		"Utilities", "Internet", TypeHintExpense, 0.75},
	{[]string{"wireless", "t-mobile", "verizon", "at&t"},
		"Utilities", "Mobile Phone", TypeHintExpense, 0.75},
	{[]string{"pharmacy", "cvs", "walgreens", "rite aid"},
		"Health & Fitness", "Pharmacy", TypeHintExpense, 0.75},
	{[]string{"gym", "fitness", "yoga", "crossfit", "planet fit"},
		"Health & Fitness", "Gym", TypeHintExpense, 0.75},
	{[]string{"dental", "dentist"},
		"Health & Fitness", "Dentist", TypeHintExpense, 0.8},
	{[]string{"medical", "clinic", "hospital", "urgent care"},
		"Health & Fitness", "Doctor", TypeHintExpense, 0.7},
	{[]string{"amazon", "amzn"},
		"Shopping", "Online Marketplaces", TypeHintExpense, 0.7},
	{[]string{"clothing", "apparel", "old navy", "nordstrom", "h&m", "zara"},
		"Shopping", "Clothing", TypeHintExpense, 0.7},
	{[]string{"best buy", "micro center", "newegg"},
		"Shopping", "Electronics", TypeHintExpense, 0.75},
	{[]string{"home depot", "lowes", "ace hardware"},
		"Housing", "Home Improvement", TypeHintExpense, 0.75},
	{[]string{"rent payment", "property mgmt", "apartments"},
		"Housing", "Rent", TypeHintExpense, 0.7},
	{[]string{"mortgage"},
		"Housing", "Mortgage", TypeHintExpense, 0.85},
	{[]string{"airline", "airways", "delta air", "united air", "southwest air", "jetblue"},
		"Travel", "Flights", TypeHintExpense, 0.8},
	{[]string{"hotel", "marriott", "hilton", "hyatt", "airbnb"},
		"Travel", "Hotels", TypeHintExpense, 0.75},
	{[]string{"hertz", "avis", "enterprise rent"},
		"Travel", "Rental Cars", TypeHintExpense, 0.8},
	{[]string{"cinema", "theatre", "theater", "amc ", "ticketmaster"},
		"Entertainment", "Movies", TypeHintExpense, 0.7},
	{[]string{"steam games", "playstation", "nintendo", "xbox"},
		"Entertainment", "Games", TypeHintExpense, 0.75},
	{[]string{"tuition", "university", "college"},
		"Education", "Tuition", TypeHintExpense, 0.7},
	{[]string{"overdraft", "maintenance fee", "service charge", "annual fee"},
		"Fees & Charges", "Bank Fees", TypeHintExpense, 0.75},
	{[]string{"interest charge", "finance charge"},
		"Fees & Charges", "Finance Charges", TypeHintExpense, 0.8},
	{[]string{"insurance", "geico", "allstate", "state farm", "progressive"},
		"Insurance", "", TypeHintExpense, 0.7},
	{[]string{"payroll", "direct deposit", "salary"},
		"Income", "", TypeHintIncome, 0.85},
	{[]string{"interest payment", "interest earned", "dividend"},
		"Interest", "", TypeHintIncome, 0.8},
	{[]string{"refund", "reversal", "cashback"},
		"Refunds", "", TypeHintIncome, 0.7},
}

// Type hints attached to keyword rules. Advisory only.
const (
	TypeHintExpense = "expense"
	TypeHintIncome  = "income"
)

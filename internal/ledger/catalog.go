package ledger

// AccountNature enumerates chart of accounts categories.
type AccountNature string

const (
	NatureAsset     AccountNature = "ASSET"
	NatureLiability AccountNature = "LIABILITY"
	NatureEquity    AccountNature = "EQUITY"
	NatureRevenue   AccountNature = "REVENUE"
	NatureExpense   AccountNature = "EXPENSE"
	NatureUnknown   AccountNature = "UNKNOWN"
)

// Fixed account codes used by the generators.
const (
	AccountCash         = "1111"
	AccountReceivables  = "1131"
	AccountInventory    = "1141"
	AccountVATCredit    = "1142"
	AccountPayables     = "2111"
	AccountVATPayable   = "2113"
	AccountPeriodProfit = "3211"
	AccountSalesRevenue = "4111"
	AccountCostOfGoods  = "5111"
)

// AccountName returns the display label for a catalog account, or the code
// itself when the account is not seeded.
func AccountName(code string) string {
	if name, ok := accountNames[code]; ok {
		return name
	}
	return code
}

var accountNames = map[string]string{
	AccountCash:         "Caja y Bancos",
	AccountReceivables:  "Cuentas por Cobrar",
	AccountInventory:    "Inventarios",
	AccountVATCredit:    "IVA Crédito Fiscal",
	AccountPayables:     "Cuentas por Pagar",
	AccountVATPayable:   "IVA por Pagar",
	AccountPeriodProfit: "Utilidad (o Pérdida) del Ejercicio",
	AccountSalesRevenue: "Ventas de Productos",
	AccountCostOfGoods:  "Costo de Productos Vendidos",
}

var catalogNatures = map[string]AccountNature{
	AccountCash:         NatureAsset,
	AccountReceivables:  NatureAsset,
	AccountInventory:    NatureAsset,
	AccountVATCredit:    NatureAsset,
	AccountPayables:     NatureLiability,
	AccountVATPayable:   NatureLiability,
	AccountPeriodProfit: NatureEquity,
	AccountSalesRevenue: NatureRevenue,
	AccountCostOfGoods:  NatureExpense,
}

// Classify maps an account code to its nature. Seeded catalog accounts use
// the explicit table; anything else falls back to the leading digit so an
// extended chart still classifies consistently.
func Classify(code string) AccountNature {
	if nature, ok := catalogNatures[code]; ok {
		return nature
	}
	if code == "" {
		return NatureUnknown
	}
	switch code[0] {
	case '1':
		return NatureAsset
	case '2':
		return NatureLiability
	case '3':
		return NatureEquity
	case '4':
		return NatureRevenue
	case '5':
		return NatureExpense
	default:
		return NatureUnknown
	}
}

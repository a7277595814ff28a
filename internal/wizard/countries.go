package wizard

// Marketplace option sets keyed by seller type. Vendors can only be
// onboarded in the four marketplaces with vendor programs; sellers get
// the full list. Order matters: the first entry is the default used when
// a country is added or coerced.
var (
	vendorCountries  = []string{"US", "UK", "CAN", "DE"}
	sellerCountries  = []string{"US", "UK", "CAN", "AUS", "DE", "UAE"}
	defaultCountries = []string{"US", "UK", "CAN", "DE", "AUS", "UAE"}
)

// CountryOptions returns the marketplaces selectable for the given
// seller type. An unset or unknown seller type yields the full set.
func CountryOptions(st SellerType) []string {
	var src []string
	switch st {
	case SellerTypeVendor:
		src = vendorCountries
	case SellerTypeExisting, SellerTypeNew:
		src = sellerCountries
	default:
		src = defaultCountries
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func countryAllowed(st SellerType, name string) bool {
	for _, c := range CountryOptions(st) {
		if c == name {
			return true
		}
	}
	return false
}

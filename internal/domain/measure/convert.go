package measure

// Convert converts a quantity from one unit to another.
//
// Pairs with no defined rule (mass to count, for example) return the input
// quantity unchanged. The UI pre-filters selectable target units to compatible
// families; this function is the last line of defense, not the primary guard,
// so it never errors. Pure float64 arithmetic, callers round for display.
func Convert(qty float64, from, to Unit, pack PackageSpec) float64 {
	if from == to {
		return qty
	}

	if from == Package {
		return fromPackage(qty, to, pack)
	}
	if to == Package {
		return intoPackage(qty, from, pack)
	}

	if from.Family() != to.Family() {
		return qty
	}

	switch {
	case from == Kilogram && to == Gram:
		return qty * 1000
	case from == Gram && to == Kilogram:
		return qty / 1000
	case from == Liter && to == Milliliter:
		return qty * 1000
	case from == Milliliter && to == Liter:
		return qty / 1000
	}

	return qty
}

// fromPackage converts a package count into a real unit.
//
// Normally one package equals pack.Size target units. The exception is
// mixed-dimension packaging: when the package is sized in another family and
// the target is a count unit, one package counts as one unit (a 500 g bag is
// "1 un" of inventory for recipe purposes).
func fromPackage(qty float64, target Unit, pack PackageSpec) float64 {
	if pack.Unit != "" && target.Family() == FamilyCount && pack.Unit.Family() != FamilyCount {
		return qty
	}
	return qty * pack.Size
}

// intoPackage converts a real-unit quantity into a package count, mirroring
// fromPackage: count quantities map one-to-one onto packages sized in another
// family, and a zero package size leaves the input unchanged.
func intoPackage(qty float64, from Unit, pack PackageSpec) float64 {
	if pack.Unit != "" && from.Family() == FamilyCount && pack.Unit.Family() != FamilyCount {
		return qty
	}
	if pack.Size == 0 {
		return qty
	}
	return qty / pack.Size
}

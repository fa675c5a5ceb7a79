// Package measure provides measurement units and quantity conversion for
// ingredients and recipes. Four families are supported: mass, volume, count,
// and the "package" pseudo-unit sized by an ingredient's package spec.
package measure

// Unit is a measurement unit symbol.
type Unit string

const (
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Liter      Unit = "l"
	Milliliter Unit = "ml"
	Count      Unit = "un"
	// Package is a pseudo-unit meaning "one package"; its real size comes
	// from the ingredient's PackageSpec.
	Package Unit = "pkg"
)

// Family groups units that convert among each other.
type Family int

const (
	FamilyNone Family = iota
	FamilyMass
	FamilyVolume
	FamilyCount
	FamilyPackage
)

// Family returns the unit's measurement family.
func (u Unit) Family() Family {
	switch u {
	case Kilogram, Gram:
		return FamilyMass
	case Liter, Milliliter:
		return FamilyVolume
	case Count:
		return FamilyCount
	case Package:
		return FamilyPackage
	}
	return FamilyNone
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u.Family() != FamilyNone
}

// BaseUnits lists the units an ingredient's stock may be stored in.
// Package is excluded: it is a display/recipe unit only.
func BaseUnits() []Unit {
	return []Unit{Kilogram, Gram, Liter, Milliliter, Count}
}

// ValidBase reports whether u can serve as an ingredient base unit.
func (u Unit) ValidBase() bool {
	return u.Valid() && u != Package
}

// PackageSpec describes an ingredient's packaging: Size units of Unit per
// package. Unit may belong to a different family than the ingredient's base
// unit (a 500 g bag of an ingredient counted in units, for example).
type PackageSpec struct {
	Size float64
	Unit Unit // zero value means unspecified
}

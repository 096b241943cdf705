package types

// Recipe is the typed form of a recipe file.
// Slice order is installation order.
type Recipe struct {
	Taps     []string
	Casks    []string
	Formulas []Formula
}

// Formula is a package to install, followed by its postinstall steps.
type Formula struct {
	Name        string
	Postinstall []Postinstall
}

// FormulaNames returns the formula names in declared order.
func (r Recipe) FormulaNames() []string {
	names := make([]string, 0, len(r.Formulas))
	for _, f := range r.Formulas {
		names = append(names, f.Name)
	}
	return names
}

// IsEmpty reports whether the recipe declares nothing to install.
func (r Recipe) IsEmpty() bool {
	return len(r.Taps) == 0 && len(r.Casks) == 0 && len(r.Formulas) == 0
}

// StepCount returns the total number of postinstall steps across formulas.
func (r Recipe) StepCount() int {
	n := 0
	for _, f := range r.Formulas {
		n += len(f.Postinstall)
	}
	return n
}

package testutil

// Table fixtures. Each call returns a fresh copy that tests may modify.

// NumericalTable2D is a labelled two-column numerical table.
func NumericalTable2D() [][]string {
	return [][]string{
		{"x", "y"},
		{"0", "1"},
		{"1", "4"},
		{"2", "9"},
	}
}

// NumericalTable3D is an unlabelled x, y, z table.
func NumericalTable3D() [][]string {
	return [][]string{
		{"0", "0", "1"},
		{"1", "0", "2"},
		{"0", "1", "3"},
		{"1", "1", "4"},
		{"0.5", "0.5", "2.5"},
	}
}

// AnimatedTable3D is an x, y, z table with two animation tail columns.
func AnimatedTable3D() [][]string {
	return [][]string{
		{"x", "y", "z", "t1", "t2"},
		{"0", "0", "1", "2", "3"},
		{"1", "0", "2", "0", "5"},
		{"0", "1", "3", "4", "1"},
		{"1", "1", "4", "6", "8"},
	}
}

// CategoricalTable is a labelled species/count table.
func CategoricalTable() [][]string {
	return [][]string{
		{"species", "count"},
		{"a", "3"},
		{"b", "7"},
	}
}

// AnimatedCategoricalTable is a categorical table with three value columns.
func AnimatedCategoricalTable() [][]string {
	return [][]string{
		{"city", "q1", "q2", "q3"},
		{"berlin", "10", "12", "15"},
		{"paris", "8", "9", "4"},
		{"rome", "5", "11", "7"},
	}
}

// PieTable is the three-entry categorical table 10/10/80.
func PieTable() [][]string {
	return [][]string{
		{"a", "10"},
		{"b", "10"},
		{"c", "80"},
	}
}

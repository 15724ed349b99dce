// Package shared holds helpers used by more than one package of degradecli
// that belong to no single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- Spectral dataset fixtures, including synthetic first-order decay runs
//	- Workbook builders that write fixtures to .xlsx in a test temp dir
//	- A buffered slog handler for asserting on log output
//	- Float tolerance assertions
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    ds := testutil.SyntheticDecay(1.0, 0.02, []int{10, 20, 30})
//	    path := testutil.WriteDatasetWorkbook(t, t.TempDir(), ds)
//	    // parse path, analyze ds ...
//	}
//
// Nothing here may contain analysis logic; fixtures are built from closed
// form expressions so tests can compare against exact expectations.
package shared

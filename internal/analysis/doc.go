// Package analysis computes photocatalytic degradation metrics from UV-Vis
// absorbance spectra.
//
// # Components
//
// Four computations run over one immutable domain.Dataset:
//
//  1. Peak extraction: maximum absorbance per condition and the wavelength at
//     which it first occurs (FindMaxPeaks).
//  2. Degradation percentage: removal relative to the "Dark" peak, which is
//     the amount left after dark adsorption (DegradationPercentages).
//  3. Kinetics: first-order fit of -ln(C/C0) against elapsed time by ordinary
//     least squares; the slope is the rate constant (FitKinetics).
//  4. Area under curve: composite Simpson integration of absorbance over
//     wavelength (CalculateAUC).
//
// Degradation and kinetics consume the peak table. AUC only needs the
// dataset, so the Analyzer runs it concurrently with the peak chain.
//
// # Errors
//
// Nothing in this package returns NaN or Inf. Conditions that would produce
// them surface as typed errors from internal/errors: MissingColumn,
// MissingBaseline, DivisionByZero, LengthMismatch, InvalidValue and
// InsufficientData. Callers match them with errors.Is against the sentinels.
//
// # Usage Example
//
//	analyzer := analysis.NewAnalyzer(slog.Default(), nil)
//	report, err := analyzer.Analyze(ctx, dataset, timePoints)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Kinetics.RateConstant)
package analysis

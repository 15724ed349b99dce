// Package exporter writes analysis results to disk.
//
// WorkbookWriter produces the results workbook, one sheet per result table
// in a fixed order:
//
//	Degradation Percentages | Kinetics Data | Peak Wavelengths | AUC Data | Kinetics Summary
//
// Every sheet has a bold header row followed by numeric cells. ReadWorkbook
// reads such a file back into a domain.Report.
//
// PlotWriter renders the absorbance spectra of a dataset as a PNG line
// chart, one series per condition.
//
// Both writers create missing parent directories and write through a
// temporary file in the target directory, so a failed write never leaves a
// truncated output behind.
//
// Example usage:
//
//	w := exporter.NewWorkbookWriter(logger)
//	if err := w.Write(report, "out/results.xlsx"); err != nil {
//		return err
//	}
//
//	p := exporter.NewPlotWriter(exporter.DefaultPlotOptions(), logger)
//	err := p.WriteSpectra(ds, "out/spectra.png")
package exporter

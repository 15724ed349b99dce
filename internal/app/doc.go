// Package app wires degradecli together.
//
// Application owns the process-wide pieces: logger, OpenTelemetry providers
// and run metrics. Pipeline runs one analysis:
//
//	1. Parse the spectra workbook
//	2. Derive the time series from the column headers
//	3. Analyze (peaks, degradation, kinetics, AUC)
//	4. Write the results workbook and the spectra plot
//	5. Record run metrics and print the completion line
//
// Nothing is written unless steps 1-3 succeed.
//
// # Usage
//
//	application, err := app.NewApplication(cfg, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer application.Shutdown(ctx)
//	return application.Run(ctx)
package app

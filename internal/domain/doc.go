// Package domain models volunteer gliding squadron flight log data.
//
// # Data Source
//
// Each flying day produces one log sheet workbook, filled in by the duty
// staff and dropped into a shared directory. Workbook names follow
// "2965D_<anything>.xlsx"; the literal "2965D_YYMMDD_ZEXXX.xlsx" is the
// blank template and never a real submission.
//
// A workbook carries two tables:
//
//	FORMATTED   one row per launch (required)
//	_AIRCRAFT   one cumulative launches/hours reading per airframe (optional)
//
// # Conventions
//
// Duty codes describe the purpose of a sortie. Several legacy or shorthand
// codes are still in circulation and are aliased during normalization:
//
//	GIC  → GIF       (renamed category)
//	SGS  → G/S
//	GWGT → AGT
//	U/T  → SCT U/T   (staff continuation training prefix)
//	QGI  → SCT QGI
//
// Placeholder rows: workbook formulas default untouched cells to "0", so a
// row with AircraftCommander "0" or a takeoff time of exactly 00:00:00 is
// an unfilled template row, not a launch.
//
// Tail numbers: the fleet's airframes carry "ZE" serials (e.g. ZE677). A
// utilization table in which no aircraft contains "ZE" was filled in
// against the wrong airframes and is rejected whole.
//
// Flight times are recorded in whole minutes; anything above 240 minutes
// is a data-entry error. The _AIRCRAFT "Hours After" column holds a
// cumulative elapsed time which the parser converts to whole minutes.
//
// # Consistency model
//
// A submission always re-supplies the complete slice of launches for its
// (Date, Aircraft) keys. Synchronization therefore deletes every stored
// row matching an incoming key before inserting the new rows: a
// composite-key replace, not a row-level merge. Keys absent from a new
// batch are left untouched, so the store accumulates history.
package domain
